// Package ewh computes effective work hours (EWH) and units per hour (UPH)
// from scan events. Everything in this package is pure and request-scoped:
// no I/O, no goroutines, no state that outlives a single call.
package ewh

import (
	"sort"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
)

// Segment partitions timestamps into contiguous work segments. A new segment
// starts whenever the gap to the previous timestamp is strictly greater than
// threshold. Zero timestamps are ignored and the input slice is not modified.
//
// With fewer than two usable timestamps there is no observable duration:
// both hour figures are zero and no anomaly is reported.
func Segment(timestamps []time.Time, threshold time.Duration) domain.SegmentationResult {
	times := make([]time.Time, 0, len(timestamps))
	for _, t := range timestamps {
		if !t.IsZero() {
			times = append(times, t)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	switch len(times) {
	case 0:
		return domain.SegmentationResult{}
	case 1:
		return domain.SegmentationResult{
			Segments: []domain.WorkSegment{{Start: times[0], End: times[0]}},
		}
	}

	if threshold < 0 {
		threshold = 0
	}

	var segments []domain.WorkSegment
	start, prev := times[0], times[0]
	for _, cur := range times[1:] {
		if cur.Sub(prev) > threshold {
			segments = append(segments, domain.WorkSegment{Start: start, End: prev})
			start = cur
		}
		prev = cur
	}
	segments = append(segments, domain.WorkSegment{Start: start, End: prev})

	var worked time.Duration
	for _, s := range segments {
		worked += s.Duration()
	}

	return domain.SegmentationResult{
		Segments:        segments,
		PreciseHours:    worked.Hours(),
		SimpleHours:     prev.Sub(times[0]).Hours(),
		AnomalyDetected: len(segments) > 1,
	}
}

// SegmentPtrs is Segment for nullable timestamps; nil entries are skipped.
func SegmentPtrs(timestamps []*time.Time, threshold time.Duration) domain.SegmentationResult {
	times := make([]time.Time, 0, len(timestamps))
	for _, t := range timestamps {
		if t != nil {
			times = append(times, *t)
		}
	}
	return Segment(times, threshold)
}
