// Package idgen issues account identifiers and update stamps.
//
// Identifiers must never repeat for the lifetime of the process, even when
// requested back to back within the same clock tick, so every generator here
// guarantees uniqueness structurally rather than probabilistically.
package idgen

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique account identifiers.
type Generator interface {
	NewID() string
}

// MicroClock yields strictly increasing microsecond timestamps. When the
// wall clock has not advanced (or went backwards) since the previous call,
// the previous value plus one is returned.
type MicroClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMicroClock() *MicroClock {
	return &MicroClock{now: time.Now}
}

// Now returns the next stamp.
func (c *MicroClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UnixMicro()
	if t <= c.last {
		t = c.last + 1
	}
	c.last = t
	return t
}

// Microtime renders MicroClock stamps as decimal strings. The ids stay
// numeric, so they can be passed around as plain integers.
type Microtime struct {
	clock *MicroClock
}

func NewMicrotime(clock *MicroClock) *Microtime {
	if clock == nil {
		clock = NewMicroClock()
	}
	return &Microtime{clock: clock}
}

func (g *Microtime) NewID() string {
	return strconv.FormatInt(g.clock.Now(), 10)
}

// UUID issues random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// New returns the generator registered under name ("microtime" or "uuid").
// Anything else yields a Microtime generator on clock.
func New(name string, clock *MicroClock) Generator {
	if name == "uuid" {
		return UUID{}
	}
	return NewMicrotime(clock)
}
