package ewh

import (
	"fmt"

	"github.com/alexanderramin/obreport/internal/domain"
)

// Named compensation factors observed in the warehouse rule set. Neither is
// applied unless a policy is configured with it.
const (
	RoutinePickingFactor   = 1.05
	AnomalySurchargeFactor = 1.10
)

// CompensationPolicy decides whether the precise EWH of a group is scaled.
type CompensationPolicy struct {
	Mode   domain.CompensationMode
	Factor float64
}

// NoCompensation reports precise EWH unchanged.
func NoCompensation() CompensationPolicy {
	return CompensationPolicy{Mode: domain.CompensationNone, Factor: 1.0}
}

func (p CompensationPolicy) Validate() error {
	mode := p.Mode
	if mode == "" {
		mode = domain.CompensationNone
	}
	if !domain.ValidCompensationModes[string(mode)] {
		return fmt.Errorf("invalid compensation mode %q", p.Mode)
	}
	if mode != domain.CompensationNone && p.Factor < 1 {
		return fmt.Errorf("compensation factor must be >= 1, got %.2f", p.Factor)
	}
	return nil
}

// Apply returns the EWH to report for r and whether the factor was used.
// A zero result is never scaled.
func (p CompensationPolicy) Apply(r domain.SegmentationResult) (float64, bool) {
	if r.PreciseHours <= 0 || p.Factor <= 0 || p.Factor == 1 {
		return r.PreciseHours, false
	}
	switch p.Mode {
	case domain.CompensationAlways:
		return r.PreciseHours * p.Factor, true
	case domain.CompensationOnAnomaly:
		if r.AnomalyDetected {
			return r.PreciseHours * p.Factor, true
		}
	}
	return r.PreciseHours, false
}
