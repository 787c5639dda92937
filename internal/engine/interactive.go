package engine

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/backmassage/uniqs/internal/display"
	"github.com/backmassage/uniqs/internal/lines"
	"github.com/backmassage/uniqs/internal/term"
)

// renderer draws live frames of the count map onto the alternate screen.
type renderer struct {
	out     *term.Sink
	surface *term.Surface
	clock   Clock
	limiter *rate.Limiter
	rows    int // Rows drawn by the previous frame.
	frames  int
	row     []byte
}

func newRenderer(out *term.Sink, surface *term.Surface, opts Options) *renderer {
	r := &renderer{
		out:     out,
		surface: surface,
		clock:   opts.Clock,
		limiter: rate.NewLimiter(rate.Every(opts.FrameInterval), 1),
	}
	// Spend the initial token so the first frame waits a full interval too.
	r.limiter.AllowN(opts.Clock.Now(), 1)
	return r
}

// maybeFrame draws a frame if the frame interval has elapsed since the
// previous one.
func (r *renderer) maybeFrame(counts *lines.Counts) error {
	if !r.limiter.AllowN(r.clock.Now(), 1) {
		return nil
	}
	return r.frame(counts)
}

// frame draws one row per entry from row 0, clipped to the terminal
// height. Rows already drawn last frame hold the same line text, so only
// their count column is rewritten. Nothing is drawn once the surface has
// been released.
func (r *renderer) frame(counts *lines.Counts) error {
	return r.surface.Draw(func() error { return r.draw(counts) })
}

func (r *renderer) draw(counts *lines.Counts) error {
	_, height, err := r.out.Size()
	if err != nil {
		return writeErr("query terminal size", err)
	}

	drawn := 0
	for i, e := range counts.Entries() {
		if i >= height {
			break
		}
		if err := r.out.MoveTo(0, i); err != nil {
			return writeErr("move cursor", err)
		}
		if i < r.rows {
			r.row = display.AppendCount(r.row[:0], e.Count)
		} else {
			r.row = display.AppendCountRow(r.row[:0], e.Count, e.Line)
		}
		if _, err := r.out.Write(r.row); err != nil {
			return writeErr("draw frame", err)
		}
		drawn++
	}

	r.rows = drawn
	r.frames++
	return writeErr("flush frame", r.out.Flush())
}

// CountInteractive counts like [CountBatch] while drawing a live tally on
// the alternate screen at most once per frame interval. On EOF it leaves
// the alternate screen and writes the same report CountBatch would. On
// any error the alternate screen is still left before the error is
// returned; a failure during that teardown is dropped in favor of the
// original error.
//
// If ctx is cancelled (e.g. on SIGINT) the screen is restored right away,
// even while the engine is blocked reading input.
func CountInteractive(ctx context.Context, src lines.Source, out *term.Sink, opts Options) (stats Stats, err error) {
	opts = opts.withDefaults()

	surface, err := term.Acquire(out)
	if err != nil {
		return Stats{}, writeErr("enter alternate screen", err)
	}
	stop := context.AfterFunc(ctx, func() { _ = surface.Release() })
	defer stop()
	defer func() {
		if rerr := surface.Release(); rerr != nil && err == nil {
			err = writeErr("leave alternate screen", rerr)
		}
	}()

	counts := lines.NewCounts()
	r := newRenderer(out, surface, opts)

	if err := ingest(ctx, src, counts, func() error { return r.maybeFrame(counts) }); err != nil {
		return countStats(counts, r.frames), err
	}

	if err := surface.Release(); err != nil {
		return countStats(counts, r.frames), writeErr("leave alternate screen", err)
	}
	if err := writeReport(out, counts); err != nil {
		return countStats(counts, r.frames), err
	}
	return countStats(counts, r.frames), nil
}
