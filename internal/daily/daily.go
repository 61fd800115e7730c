package daily

import (
	"fmt"
	"sync"
	"time"
)

// Layout is the calendar key format used by every per-day row.
const Layout = "2006-01-02"

// Day is a calendar date in the game's timezone, formatted as YYYY-MM-DD.
type Day string

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(Layout))
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return string(d)
}

// AddDays shifts the day by n calendar days. An unparsable day is returned unchanged.
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Clock is the source of "now" for everything that keys state by day.
type Clock interface {
	Now() time.Time
}

// Today returns the current day according to c.
func Today(c Clock) Day {
	return DayOf(c.Now())
}

// SystemClock reads the wall clock and reports it in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// FixedClock is a settable clock for tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
