package pipeline

import (
	"time"

	"github.com/backmassage/uniqs/internal/engine"
)

// RunStats summarizes a run for the diagnostic log.
type RunStats struct {
	Mode          engine.Mode
	Lines         int
	Distinct      int
	DistinctBytes int64
	Frames        int
	Elapsed       time.Duration
}

// Duplicates returns how many lines were repeats of an earlier line.
func (s *RunStats) Duplicates() int {
	return s.Lines - s.Distinct
}
