package ewh

import (
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestSegment_ScenarioA_GapsSplitSegments(t *testing.T) {
	res := Segment([]time.Time{at(8, 40), at(8, 0), at(8, 10), at(8, 2)}, 5*time.Minute)

	require.Len(t, res.Segments, 3)
	assert.Equal(t, domain.WorkSegment{Start: at(8, 0), End: at(8, 2)}, res.Segments[0])
	assert.Equal(t, domain.WorkSegment{Start: at(8, 10), End: at(8, 10)}, res.Segments[1])
	assert.Equal(t, domain.WorkSegment{Start: at(8, 40), End: at(8, 40)}, res.Segments[2])
	assert.InDelta(t, 2.0/60, res.PreciseHours, 1e-9)
	assert.InDelta(t, 40.0/60, res.SimpleHours, 1e-9)
	assert.True(t, res.AnomalyDetected)
}

func TestSegment_ScenarioB_FifteenMinuteThresholdStillSplitsLongGap(t *testing.T) {
	res := Segment([]time.Time{at(8, 0), at(8, 2), at(8, 10), at(8, 40)}, 15*time.Minute)

	// 08:10 -> 08:40 is 30 minutes, wider than the threshold.
	require.Len(t, res.Segments, 2)
	assert.Equal(t, domain.WorkSegment{Start: at(8, 0), End: at(8, 10)}, res.Segments[0])
	assert.Equal(t, domain.WorkSegment{Start: at(8, 40), End: at(8, 40)}, res.Segments[1])
	assert.InDelta(t, 10.0/60, res.PreciseHours, 1e-9)
	assert.InDelta(t, 40.0/60, res.SimpleHours, 1e-9)
	assert.True(t, res.AnomalyDetected)
}

func TestSegment_WideThresholdSingleSegment(t *testing.T) {
	res := Segment([]time.Time{at(8, 0), at(8, 2), at(8, 10), at(8, 40)}, 30*time.Minute)

	require.Len(t, res.Segments, 1)
	assert.Equal(t, at(8, 0), res.Segments[0].Start)
	assert.Equal(t, at(8, 40), res.Segments[0].End)
	assert.InDelta(t, 0.667, res.PreciseHours, 0.001)
	assert.Equal(t, res.SimpleHours, res.PreciseHours)
	assert.False(t, res.AnomalyDetected)
}

func TestSegment_GapEqualToThresholdStaysInSegment(t *testing.T) {
	res := Segment([]time.Time{at(9, 0), at(9, 5), at(9, 10)}, 5*time.Minute)

	require.Len(t, res.Segments, 1)
	assert.InDelta(t, 10.0/60, res.PreciseHours, 1e-9)
	assert.False(t, res.AnomalyDetected)
}

func TestSegment_InsufficientData(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		res := Segment(nil, 5*time.Minute)
		assert.Empty(t, res.Segments)
		assert.Zero(t, res.PreciseHours)
		assert.Zero(t, res.SimpleHours)
		assert.False(t, res.AnomalyDetected)
	})

	t.Run("single timestamp is a point", func(t *testing.T) {
		res := Segment([]time.Time{at(9, 0)}, 5*time.Minute)
		require.Len(t, res.Segments, 1)
		assert.Equal(t, at(9, 0), res.Segments[0].Start)
		assert.Equal(t, at(9, 0), res.Segments[0].End)
		assert.Zero(t, res.PreciseHours)
		assert.False(t, res.AnomalyDetected)
	})

	t.Run("zero values are ignored", func(t *testing.T) {
		res := Segment([]time.Time{{}, at(9, 0), {}}, 5*time.Minute)
		require.Len(t, res.Segments, 1)
		assert.Zero(t, res.PreciseHours)
	})
}

func TestSegment_DoesNotReorderInput(t *testing.T) {
	in := []time.Time{at(10, 0), at(9, 0)}
	Segment(in, time.Minute)
	assert.Equal(t, at(10, 0), in[0])
}

func TestSegment_DuplicateTimestamps(t *testing.T) {
	res := Segment([]time.Time{at(9, 0), at(9, 0), at(9, 0)}, 5*time.Minute)

	require.Len(t, res.Segments, 1)
	assert.Zero(t, res.PreciseHours)
	assert.False(t, res.AnomalyDetected)
}

func TestSegmentPtrs_SkipsNil(t *testing.T) {
	a, b := at(8, 0), at(8, 3)
	res := SegmentPtrs([]*time.Time{nil, &a, nil, &b}, 5*time.Minute)

	require.Len(t, res.Segments, 1)
	assert.InDelta(t, 3.0/60, res.PreciseHours, 1e-9)
}

func TestCompensationPolicy_Apply(t *testing.T) {
	anomalous := domain.SegmentationResult{PreciseHours: 2, AnomalyDetected: true}
	contiguous := domain.SegmentationResult{PreciseHours: 2}

	tests := []struct {
		name        string
		policy      CompensationPolicy
		in          domain.SegmentationResult
		wantHours   float64
		wantApplied bool
	}{
		{"none", NoCompensation(), anomalous, 2, false},
		{"on anomaly with anomaly", CompensationPolicy{domain.CompensationOnAnomaly, AnomalySurchargeFactor}, anomalous, 2.2, true},
		{"on anomaly without anomaly", CompensationPolicy{domain.CompensationOnAnomaly, AnomalySurchargeFactor}, contiguous, 2, false},
		{"always", CompensationPolicy{domain.CompensationAlways, RoutinePickingFactor}, contiguous, 2.1, true},
		{"factor one is a no-op", CompensationPolicy{domain.CompensationAlways, 1}, contiguous, 2, false},
		{"zero hours never scaled", CompensationPolicy{domain.CompensationAlways, 1.1}, domain.SegmentationResult{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, applied := tt.policy.Apply(tt.in)
			assert.InDelta(t, tt.wantHours, hours, 1e-9)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}

func TestCompensationPolicy_Validate(t *testing.T) {
	assert.NoError(t, NoCompensation().Validate())
	assert.NoError(t, CompensationPolicy{}.Validate())
	assert.NoError(t, CompensationPolicy{domain.CompensationOnAnomaly, 1.1}.Validate())
	assert.Error(t, CompensationPolicy{"sometimes", 1.1}.Validate())
	assert.Error(t, CompensationPolicy{domain.CompensationAlways, 0.9}.Validate())
}
