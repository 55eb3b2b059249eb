// Package flight serializes work that shares a key.
package flight

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type slot struct {
	sem  *semaphore.Weighted
	refs int
}

// Serializer runs at most one function per key at a time. Waiters acquire the
// key in the order they arrived, so results are applied in issue order.
type Serializer struct {
	mu    sync.Mutex
	slots map[string]*slot
}

func NewSerializer() *Serializer {
	return &Serializer{slots: make(map[string]*slot)}
}

// Do runs fn once every earlier call for key has returned. It gives up with
// ctx.Err() if ctx is done before the key is free; fn is not run in that case.
func (s *Serializer) Do(ctx context.Context, key string, fn func() error) error {
	sl := s.acquire(key)
	defer s.release(key, sl)

	if err := sl.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sl.sem.Release(1)

	return fn()
}

// Len reports how many keys have callers running or waiting.
func (s *Serializer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Serializer) acquire(key string) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[key]
	if !ok {
		sl = &slot{sem: semaphore.NewWeighted(1)}
		s.slots[key] = sl
	}
	sl.refs++
	return sl
}

func (s *Serializer) release(key string, sl *slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl.refs--
	if sl.refs == 0 {
		delete(s.slots, key)
	}
}
