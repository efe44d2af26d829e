package domain

import "time"

// WorkEvent is one scanned picking or packing action.
type WorkEvent struct {
	Worker    string
	Timestamp *time.Time
	Quantity  int
	Category  Category

	// Source locates the originating row for diagnostics, e.g. "picking.xlsx:14".
	Source string
}

// Valid reports whether the event can take part in aggregation.
func (e WorkEvent) Valid() bool {
	return e.Worker != "" && e.Timestamp != nil && !e.Timestamp.IsZero()
}

// EffectiveQuantity returns the quantity, defaulting non-positive values to 1.
func (e WorkEvent) EffectiveQuantity() int {
	if e.Quantity <= 0 {
		return 1
	}
	return e.Quantity
}

// WorkSegment is a contiguous span of activity for one worker and category.
type WorkSegment struct {
	Start time.Time
	End   time.Time
}

func (s WorkSegment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// SegmentationResult is the outcome of splitting one timestamp set into segments.
type SegmentationResult struct {
	Segments        []WorkSegment
	PreciseHours    float64
	SimpleHours     float64
	AnomalyDetected bool
}
