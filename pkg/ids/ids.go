// Package ids issues the timestamp based identifiers used for todos and orders.
package ids

import (
	"sync"
	"time"
)

// Sequence hands out strictly increasing Unix millisecond ids. When the clock
// has not advanced since the previous id the next one is bumped by one.
type Sequence struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewSequence builds a sequence over now; a nil clock uses time.Now.
func NewSequence(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe raises the floor so ids already handed out elsewhere (for example
// ones restored from storage) are never reissued.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
