package engine

import "time"

// TimeProvider is the wall clock source for the scene clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system time, which carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
