package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
)

// ValidateOverrideFile checks every entry and returns all problems found.
func ValidateOverrideFile(f *OverrideFile) []error {
	var errs []error

	if f.Date != "" {
		if _, err := time.Parse("2006-01-02", f.Date); err != nil {
			errs = append(errs, fmt.Errorf("date: invalid date format %q (expected YYYY-MM-DD)", f.Date))
		}
	}

	seen := make(map[string]int)
	for i, e := range f.Overrides {
		prefix := fmt.Sprintf("overrides[%d]", i)
		if strings.TrimSpace(e.Worker) == "" {
			errs = append(errs, fmt.Errorf("%s.worker is required", prefix))
		} else if j, dup := seen[e.Worker]; dup {
			errs = append(errs, fmt.Errorf("%s.worker %q duplicates overrides[%d]", prefix, e.Worker, j))
		} else {
			seen[e.Worker] = i
		}
		if e.Quantity == nil {
			errs = append(errs, fmt.Errorf("%s.quantity is required", prefix))
		} else if *e.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("%s.quantity must be > 0, got %d", prefix, *e.Quantity))
		}
		if e.EWH != nil && *e.EWH < 0 {
			errs = append(errs, fmt.Errorf("%s.ewh must be >= 0, got %g", prefix, *e.EWH))
		}
	}

	return errs
}

// ToOverrides converts a validated file into merge input, in file order.
func (f *OverrideFile) ToOverrides() []domain.PreshipmentOverride {
	out := make([]domain.PreshipmentOverride, 0, len(f.Overrides))
	for _, e := range f.Overrides {
		out = append(out, domain.PreshipmentOverride{
			Worker:   strings.TrimSpace(e.Worker),
			Quantity: domain.Deref(0, e.Quantity),
			EWH:      domain.Deref(0.0, e.EWH),
		})
	}
	return out
}

// ParseOverrideFlag parses "worker:quantity[:ewh]". With three or more
// fields the last two are quantity and EWH, so a worker name may contain
// colons only when the EWH is given.
func ParseOverrideFlag(s string) (domain.PreshipmentOverride, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return domain.PreshipmentOverride{}, fmt.Errorf("override %q: expected worker:quantity[:ewh]", s)
	}

	var o domain.PreshipmentOverride
	qtyIdx := len(parts) - 1
	if len(parts) >= 3 {
		qtyIdx = len(parts) - 2
		ewh, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64)
		if err != nil {
			return domain.PreshipmentOverride{}, fmt.Errorf("override %q: ewh: %w", s, err)
		}
		o.EWH = ewh
	}

	qty, err := strconv.Atoi(strings.TrimSpace(parts[qtyIdx]))
	if err != nil {
		return domain.PreshipmentOverride{}, fmt.Errorf("override %q: quantity: %w", s, err)
	}
	o.Quantity = qty
	o.Worker = strings.TrimSpace(strings.Join(parts[:qtyIdx], ":"))

	if err := o.Validate(); err != nil {
		return domain.PreshipmentOverride{}, fmt.Errorf("override %q: %w", s, err)
	}
	return o, nil
}
