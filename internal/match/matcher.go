// Package match picks the flight-search candidate that corresponds to a
// booking leg and decides which merged leg is the depart and which the
// return.
package match

import (
	"strings"
	"time"

	"github.com/makersair/fhbridge/internal/domain"
	"github.com/makersair/fhbridge/internal/fareharbor"
)

// Find returns the first candidate whose local calendar date equals the
// target date and whose flight number equals the target after normalization.
// Candidates are scanned in search order, so repeated calls with the same
// input return the same candidate; ties resolve to the first row rather
// than erroring. The second return is false when nothing matches.
func Find(candidates []domain.FlightCandidate, date time.Time, flightNumber string) (domain.FlightCandidate, bool) {
	targetDate := date.Format("2006-01-02")
	targetNumber := NormalizeNumber(flightNumber)
	if targetNumber == "" {
		return domain.FlightCandidate{}, false
	}

	for _, c := range candidates {
		flightTime, err := fareharbor.ParseTimestamp(c.FlightDate)
		if err != nil {
			continue
		}
		if flightTime.Format("2006-01-02") != targetDate {
			continue
		}
		if NormalizeNumber(c.FlightNumber) == targetNumber {
			return c, true
		}
	}
	return domain.FlightCandidate{}, false
}

// NormalizeNumber strips whitespace and leading zeros so "0516 " and "516"
// compare equal. An all-zero number normalizes to "0".
func NormalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}
