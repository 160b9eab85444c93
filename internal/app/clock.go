package app

import "time"

// Clock abstracts time.Now so the future-start write guard and the fetch
// window are testable with a fixed instant.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// MockClock returns a fixed, settable instant.
type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time { return c.currentTime }

func (c *MockClock) Set(t time.Time) { c.currentTime = t }
