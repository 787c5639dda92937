package engine

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/backmassage/uniqs/internal/display"
	"github.com/backmassage/uniqs/internal/lines"
	"github.com/backmassage/uniqs/internal/term"
)

// DefaultFrameInterval is used when Options.FrameInterval is zero.
const DefaultFrameInterval = 33 * time.Millisecond

// Clock supplies monotonic timestamps for frame throttling.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options tunes the interactive engine. The zero value is ready to use.
type Options struct {
	FrameInterval time.Duration
	Clock         Clock
}

func (o Options) withDefaults() Options {
	if o.FrameInterval <= 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	return o
}

// Stats summarizes one engine run.
type Stats struct {
	Lines         int   // Lines read.
	Distinct      int   // Distinct lines held.
	DistinctBytes int64 // Total size of the distinct lines held.
	Frames        int   // Live frames drawn (interactive mode only).
}

// next reads one line, translating io.EOF into done and faults into a
// *ReadError. ctx is checked first so an interrupt stops the loop.
func next(ctx context.Context, src lines.Source) (line []byte, done bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	line, err = src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		}
		return nil, false, &ReadError{Err: err}
	}
	return line, false, nil
}

// Dedup writes each line the first time it appears and drops repeats.
// Output is flushed after every line on a terminal and buffered otherwise;
// on a read error whatever was already emitted is flushed before the error
// is returned.
func Dedup(ctx context.Context, src lines.Source, out *term.Sink) (Stats, error) {
	var stats Stats
	seen := lines.NewSeen()
	interactive := out.IsTerminal()

	for {
		line, done, err := next(ctx, src)
		if done {
			break
		}
		if err != nil {
			_ = out.Flush()
			return stats, err
		}
		stats.Lines++
		if !seen.Insert(line) {
			continue
		}
		if err := out.WriteLine(line); err != nil {
			return stats, writeErr("write line", err)
		}
		stats.Distinct++
		stats.DistinctBytes = seen.Bytes()
		if interactive {
			if err := out.Flush(); err != nil {
				return stats, writeErr("flush output", err)
			}
		}
	}
	return stats, writeErr("flush output", out.Flush())
}

// CountBatch counts every line and, after EOF, writes one
// "{count:>7} {line}" row per distinct line in first-appearance order.
func CountBatch(ctx context.Context, src lines.Source, out *term.Sink) (Stats, error) {
	counts := lines.NewCounts()
	if err := ingest(ctx, src, counts, nil); err != nil {
		return countStats(counts, 0), err
	}
	return countStats(counts, 0), writeReport(out, counts)
}

// ingest adds every line of src to counts, calling after (when non-nil)
// following each update.
func ingest(ctx context.Context, src lines.Source, counts *lines.Counts, after func() error) error {
	for {
		line, done, err := next(ctx, src)
		if done {
			return nil
		}
		if err != nil {
			return err
		}
		counts.Add(line)
		if after != nil {
			if err := after(); err != nil {
				return err
			}
		}
	}
}

// writeReport writes the final count report and flushes.
func writeReport(out *term.Sink, counts *lines.Counts) error {
	var row []byte
	for _, e := range counts.Entries() {
		row = display.AppendCountRow(row[:0], e.Count, e.Line)
		row = append(row, '\n')
		if _, err := out.Write(row); err != nil {
			return writeErr("write report", err)
		}
	}
	return writeErr("flush output", out.Flush())
}

func countStats(counts *lines.Counts, frames int) Stats {
	return Stats{
		Lines:         counts.Total(),
		Distinct:      counts.Len(),
		DistinctBytes: counts.Bytes(),
		Frames:        frames,
	}
}
