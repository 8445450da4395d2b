package trackrelay

import (
	"sync"
	"time"

	"github.com/behrlich/trackrelay/internal/wire"
)

// NewTestTrack builds a valid Track fixture for use in tests and examples.
func NewTestTrack(trackID int32) wire.Track {
	return wire.Track{
		TrackID:            trackID,
		VX:                 100.0,
		VY:                 200.0,
		VZ:                 50.0,
		PX:                 4_000_000.0,
		PY:                 3_000_000.0,
		PZ:                 5_000_000.0,
		OriginalUpdateTime: 1_700_000_000_000,
	}
}

// FakeClock is a settable, concurrency-safe clock for deterministic tests
// of components that take a now func() time.Time or now func() int64.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock constructs a FakeClock fixed at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now returns the current fixed time, satisfying a now func() time.Time
// parameter.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NowMicros returns the current fixed time in microseconds since the Unix
// epoch, satisfying a now func() int64 parameter.
func (c *FakeClock) NowMicros() int64 {
	return c.Now().UnixMicro()
}

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
