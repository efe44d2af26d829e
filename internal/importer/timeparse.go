package importer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrUnparseableTime = errors.New("unparseable timestamp")

// serialEpoch is day zero of spreadsheet serial dates.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// textLayouts are tried in order after the serial check.
var textLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

var (
	ymdPattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})`)
	mdyPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})`)
	ySlash     = regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})`)
)

// maxSerial is 9999-12-31, the last date a spreadsheet can hold.
const maxSerial = 2958465

// FromSerial converts a spreadsheet serial date to the same wall clock in loc.
// Callers check the range; see ParseTimestamp.
func FromSerial(serial float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	days := math.Floor(serial)
	// Round to the millisecond; serials carry float noise.
	ms := math.Round((serial - days) * 86400 * 1000)
	wall := serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)
}

// ParseTimestamp resolves a raw cell value. The first match wins: a numeric
// serial date, then textLayouts in loc, then loose non-padded forms.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseableTime)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(serial) || serial < 1 || serial > maxSerial {
			return time.Time{}, fmt.Errorf("%w: serial %q out of range", ErrUnparseableTime, s)
		}
		return FromSerial(serial, loc), nil
	}

	for _, layout := range textLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	if t, ok := parseLoose(s, loc); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
}

func parseLoose(s string, loc *time.Location) (time.Time, bool) {
	type candidate struct {
		re                      *regexp.Regexp
		year, month, day, clock int
	}
	candidates := []candidate{
		{ymdPattern, 1, 2, 3, 4},
		{mdyPattern, 3, 1, 2, 4},
		{ySlash, 1, 2, 3, 4},
	}
	for _, c := range candidates {
		m := c.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n := make([]int, len(m))
		for i := 1; i < len(m); i++ {
			n[i], _ = strconv.Atoi(m[i])
		}
		year, month, day := n[c.year], n[c.month], n[c.day]
		hour, minute, second := n[c.clock], n[c.clock+1], n[c.clock+2]
		if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
			continue
		}
		t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
		// Reject dates that time.Date normalized, e.g. 2/30.
		if t.Day() != day {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
