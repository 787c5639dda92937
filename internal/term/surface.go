package term

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Surface is the alternate-screen, no-wrap drawing area. It is acquired
// once and released exactly once; Release may be called from any
// goroutine and any number of times.
type Surface struct {
	sink     *Sink
	mu       sync.Mutex // Held for a whole frame and for Release.
	once     sync.Once
	released atomic.Bool
	err      error
}

// Acquire switches sink to the alternate screen with line wrap disabled.
// If the switch fails part way, whatever was applied is undone before the
// error is returned.
func Acquire(sink *Sink) (*Surface, error) {
	s := &Surface{sink: sink}
	if err := sink.EnterAltScreen(); err != nil {
		return nil, err
	}
	if err := sink.DisableLineWrap(); err != nil {
		_ = s.Release()
		return nil, err
	}
	return s, nil
}

// Active reports whether the surface has not been released yet.
func (s *Surface) Active() bool { return !s.released.Load() }

// Draw calls fn while holding the surface, so a concurrent Release waits
// for the frame to finish. Once the surface is released fn is not called
// and Draw returns nil.
func (s *Surface) Draw(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released.Load() {
		return nil
	}
	return fn()
}

// Release re-enables line wrap, leaves the alternate screen, and flushes.
// Every step is attempted even if an earlier one fails; the joined error
// is returned on the first call and remembered for later calls.
func (s *Surface) Release() error {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.released.Store(true)
		s.err = errors.Join(
			s.sink.EnableLineWrap(),
			s.sink.LeaveAltScreen(),
			s.sink.Flush(),
		)
	})
	return s.err
}
