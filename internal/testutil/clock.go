package testutil

import (
	"fmt"
	"sync"
	"time"
)

// StubClock starts at a fixed instant and moves forward one second per call, so records
// created in sequence get strictly increasing timestamps.
type StubClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

func NewStubClock() *StubClock {
	return &StubClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), Step: time.Second}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}

// SequentialIDs yields "id-0001", "id-0002", ... which sort in creation order.
type SequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *SequentialIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}
