package engine

import (
	"context"
	"fmt"

	"github.com/backmassage/uniqs/internal/lines"
	"github.com/backmassage/uniqs/internal/term"
)

// Mode names the engine chosen for a run.
type Mode string

const (
	ModeDedup      Mode = "dedup"       // Stream first occurrences.
	ModeCountBatch Mode = "count-batch" // Count, report after EOF.
	ModeCountTTY   Mode = "count-tty"   // Count with a live view on a terminal.
)

// Select picks the engine for the (count, terminal) pair.
func Select(count, terminal bool) Mode {
	switch {
	case !count:
		return ModeDedup
	case terminal:
		return ModeCountTTY
	default:
		return ModeCountBatch
	}
}

// Run executes exactly one engine for mode.
func Run(ctx context.Context, mode Mode, src lines.Source, out *term.Sink, opts Options) (Stats, error) {
	switch mode {
	case ModeDedup:
		return Dedup(ctx, src, out)
	case ModeCountBatch:
		return CountBatch(ctx, src, out)
	case ModeCountTTY:
		return CountInteractive(ctx, src, out, opts)
	}
	return Stats{}, fmt.Errorf("unknown engine mode %q", mode)
}
