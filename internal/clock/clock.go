package clock

import "time"

// Clock abstracts the single now() source all expiry math depends on, so
// tests can simulate elapsed durations deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// New returns the wall clock used in production.
func New() Clock { return systemClock{} }

// Fixed is a Clock pinned to a settable instant, for tests.
type Fixed struct {
	Current time.Time
}

func (f *Fixed) Now() time.Time { return f.Current }

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) { f.Current = f.Current.Add(d) }
