package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/importer"
	"github.com/alexanderramin/obreport/internal/repository"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateDate(date string) error {
	if _, err := time.Parse(repository.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

// earliestScan returns the earliest valid event timestamp.
func earliestScan(events []domain.WorkEvent) (time.Time, bool) {
	var first time.Time
	found := false
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		if !found || e.Timestamp.Before(first) {
			first = *e.Timestamp
			found = true
		}
	}
	return first, found
}

func diagnosticStrings(diags []importer.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}

func invalidOverride(errs []error) *app.ReportError {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return &app.ReportError{Code: app.ReportErrInvalidOverride, Message: strings.Join(msgs, "; ")}
}

// IsReportError reports whether err carries a ReportError with code.
func IsReportError(err error, code app.ReportErrorCode) bool {
	var re *app.ReportError
	return errors.As(err, &re) && re.Code == code
}
