// Package schedule computes the delivery dates a client may pick at
// checkout, given the weekday policy of their delivery zone.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Policy bounds the date scan. The checkout defaults live in configuration,
// not here.
type Policy struct {
	MinLeadDays      int
	MaxLookaheadDays int
	MaxResults       int
}

// DefaultPolicy matches the storefront checkout: at least two days of lead
// time, four weeks of lookahead, at most eight choices.
func DefaultPolicy() Policy {
	return Policy{MinLeadDays: 2, MaxLookaheadDays: 28, MaxResults: 8}
}

// Available returns the upcoming eligible delivery dates, ascending. The
// scan starts the day after reference and ends MaxLookaheadDays out,
// inclusive. A day qualifies when its weekday is allowed and its offset from
// reference is at least MinLeadDays. An empty weekday set yields no dates;
// callers treat that as a soft dead-end, not an error.
func Available(allowed []time.Weekday, reference time.Time, p Policy) []time.Time {
	if len(allowed) == 0 || p.MaxResults <= 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(allowed))
	for _, wd := range allowed {
		set[wd] = true
	}

	day := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	var dates []time.Time
	for offset := 1; offset <= p.MaxLookaheadDays; offset++ {
		candidate := day.AddDate(0, 0, offset)
		if offset < p.MinLeadDays || !set[candidate.Weekday()] {
			continue
		}
		dates = append(dates, candidate)
		if len(dates) == p.MaxResults {
			break
		}
	}
	return dates
}

// Contains reports whether date (compared by calendar day) is one of the
// dates Available would produce.
func Contains(allowed []time.Weekday, reference time.Time, p Policy, date time.Time) bool {
	want := date.Format("2006-01-02")
	for _, d := range Available(allowed, reference, p) {
		if d.Format("2006-01-02") == want {
			return true
		}
	}
	return false
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a weekday name onto time.Weekday, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return wd, nil
}

// Normalize validates a list of weekday names against the seven-value
// vocabulary and deduplicates it, preserving first-seen order.
func Normalize(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	var out []time.Weekday
	for _, name := range names {
		wd, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	return out, nil
}
