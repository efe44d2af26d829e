package domain

type Category string

const (
	CategoryPickSingle  Category = "pick_single"
	CategoryPickMulti   Category = "pick_multi"
	CategoryPickUnknown Category = "pick_unknown"
	CategoryPack        Category = "pack"
)

// ReportCategories is the display order of the measured categories.
var ReportCategories = []Category{CategoryPickSingle, CategoryPickMulti, CategoryPack}

// AllCategories lists every category, unclassified picks included.
var AllCategories = []Category{CategoryPickSingle, CategoryPickMulti, CategoryPickUnknown, CategoryPack}

// IsPicking reports whether c is one of the picking categories.
func (c Category) IsPicking() bool {
	return c == CategoryPickSingle || c == CategoryPickMulti || c == CategoryPickUnknown
}

// Measured reports whether c takes part in EWH computation.
// Unknown picking events only feed raw pick counts.
func (c Category) Measured() bool {
	return c == CategoryPickSingle || c == CategoryPickMulti || c == CategoryPack
}

// Label returns a short human label for c.
func (c Category) Label() string {
	switch c {
	case CategoryPickSingle:
		return "Pick single"
	case CategoryPickMulti:
		return "Pick multi"
	case CategoryPickUnknown:
		return "Pick (unclassified)"
	case CategoryPack:
		return "Pack"
	default:
		return string(c)
	}
}

// ClassifyPick maps the single/multi counts of a picking row to a category.
func ClassifyPick(singleCount, multiCount int) Category {
	switch {
	case singleCount > 0:
		return CategoryPickSingle
	case multiCount > 0:
		return CategoryPickMulti
	default:
		return CategoryPickUnknown
	}
}

type ReportMode string

const (
	ModeDaily      ReportMode = "daily"
	ModeEfficiency ReportMode = "efficiency"
)

// ValidReportModes is the canonical set of accepted report mode strings.
var ValidReportModes = map[string]bool{
	"daily": true, "efficiency": true,
}

type CompensationMode string

const (
	CompensationNone      CompensationMode = "none"
	CompensationOnAnomaly CompensationMode = "on_anomaly"
	CompensationAlways    CompensationMode = "always"
)

// ValidCompensationModes is the canonical set of accepted compensation mode strings.
var ValidCompensationModes = map[string]bool{
	"none": true, "on_anomaly": true, "always": true,
}
