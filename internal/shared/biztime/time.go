// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// date boundaries: drop calendar weeks and the daily snapshot date stamp.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone. Drop schedules and
	// daily ranking snapshots follow US mountain time unless configured.
	DefaultTimezone = "America/Denver"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing with the
// default if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current date (midnight) in the business timezone,
// converted to UTC. Used as the snapshot date key for the daily ranking job.
func Today() time.Time {
	now := time.Now().In(Location())
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location()).UTC()
}

// WeekBounds returns the UTC start (inclusive) and end (exclusive) of the
// business-timezone week containing t. Weeks start on Monday, matching the
// drop calendar.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(Location())
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, Location())

	weekday := int(midnight.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday-based week
	}
	start := midnight.AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7)
	return start.UTC(), end.UTC()
}
