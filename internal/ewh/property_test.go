package ewh

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestSegment_Invariants_GapsAndHours property-tests segmentation: gaps inside
// a segment never exceed the threshold, gaps between segments always do, and
// precise hours never exceed simple hours.
func TestSegment_Invariants_GapsAndHours(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		threshold := time.Duration(rng.Intn(20)+1) * time.Minute
		n := rng.Intn(30)
		times := make([]time.Time, n)
		for i := range times {
			times[i] = day.Add(time.Duration(rng.Intn(8*3600)) * time.Second)
		}

		res := Segment(times, threshold)

		if n < 2 {
			assert.Zero(t, res.PreciseHours, "trial %d", trial)
			assert.False(t, res.AnomalyDetected, "trial %d", trial)
			continue
		}

		for i, s := range res.Segments {
			assert.False(t, s.End.Before(s.Start), "trial %d: segment %d ends before start", trial, i)
			if i > 0 {
				gap := s.Start.Sub(res.Segments[i-1].End)
				assert.Greater(t, gap, threshold, "trial %d: gap between segments %d and %d", trial, i-1, i)
			}
		}

		// Every timestamp lands in a segment, and consecutive timestamps
		// inside one segment are within threshold.
		for _, ts := range times {
			found := false
			for _, s := range res.Segments {
				if !ts.Before(s.Start) && !ts.After(s.End) {
					found = true
					break
				}
			}
			assert.True(t, found, "trial %d: timestamp %s outside every segment", trial, ts)
		}

		assert.LessOrEqual(t, res.PreciseHours, res.SimpleHours+1e-12, "trial %d", trial)
		if len(res.Segments) == 1 {
			assert.InDelta(t, res.SimpleHours, res.PreciseHours, 1e-12, "trial %d", trial)
		} else {
			assert.Less(t, res.PreciseHours, res.SimpleHours, "trial %d", trial)
		}
		assert.Equal(t, len(res.Segments) > 1, res.AnomalyDetected, "trial %d", trial)
	}
}

// TestAggregate_Invariants_UPHDefinedIffEWH checks UPH presence against EWH
// and that merged rows come out in non-increasing TotalEWH order.
func TestAggregate_Invariants_UPHDefinedIffEWH(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	workers := []string{"Alice", "Bob", "Carol", "Dan", "Eve"}
	categories := domain.AllCategories

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		events := make([]domain.WorkEvent, n)
		for i := range events {
			ts := day.Add(time.Duration(6*3600+rng.Intn(10*3600)) * time.Second)
			events[i] = domain.WorkEvent{
				Worker:    workers[rng.Intn(len(workers))],
				Timestamp: &ts,
				Quantity:  rng.Intn(4),
				Category:  categories[rng.Intn(len(categories))],
			}
		}
		var overrides []domain.PreshipmentOverride
		for i := rng.Intn(3); i > 0; i-- {
			overrides = append(overrides, domain.PreshipmentOverride{
				Worker:   workers[rng.Intn(len(workers))] + "x",
				Quantity: rng.Intn(50) + 1,
				EWH:      float64(rng.Intn(5)),
			})
		}

		agg, err := Aggregate(events, DefaultOptions())
		if !assert.NoError(t, err) {
			continue
		}
		rows, err := MergeOverrides(agg, overrides, nil)
		if !assert.NoError(t, err) {
			continue
		}

		for i, row := range rows {
			for c, s := range row.Categories {
				if s.EWHHours > 0 {
					if assert.NotNil(t, s.UPH, "trial %d: %s/%s", trial, row.Worker, c) {
						assert.InDelta(t, float64(s.Quantity)/s.EWHHours, *s.UPH, 1e-9)
					}
				} else {
					assert.Nil(t, s.UPH, "trial %d: %s/%s", trial, row.Worker, c)
				}
			}
			if i > 0 {
				prev := rows[i-1]
				assert.GreaterOrEqual(t, prev.TotalEWH, row.TotalEWH, "trial %d: order at %d", trial, i)
				if prev.TotalEWH == row.TotalEWH {
					assert.Less(t, prev.FirstSeen, row.FirstSeen, "trial %d: tie order at %d", trial, i)
				}
			}
		}
	}
}
