package clock

import "time"

// Clock is the single source of "now" for services and handlers.
type Clock interface {
	Now() time.Time
}

// Func turns a plain function into a Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// NewSystem reads the wall clock, in UTC.
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// NewFixed always reports t, in UTC.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
