package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/backmassage/uniqs/internal/config"
	"github.com/backmassage/uniqs/internal/display"
	"github.com/backmassage/uniqs/internal/engine"
	"github.com/backmassage/uniqs/internal/lines"
	"github.com/backmassage/uniqs/internal/logging"
	"github.com/backmassage/uniqs/internal/term"
)

// Run is the top-level entry point. It opens INPUT and OUTPUT, selects
// exactly one engine, runs it to completion, and closes the files. The
// first error aborts the run; output already written is kept.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	return run(ctx, cfg, log, streams{stdin: os.Stdin, stdout: os.Stdout})
}

func run(ctx context.Context, cfg *config.Config, log *logging.Logger, std streams) (stats RunStats, err error) {
	in, closeIn, err := openInput(cfg, std)
	if err != nil {
		return stats, err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg, std, in)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = &engine.WriteError{Op: "close output", Err: cerr}
		}
	}()

	sink := term.NewSink(out)
	stats.Mode = engine.Select(cfg.Count, sink.IsTerminal())
	logRunHeader(cfg, log, stats.Mode)

	start := time.Now()
	es, err := engine.Run(ctx, stats.Mode, lines.NewReader(in), sink, engine.Options{
		FrameInterval: cfg.FrameInterval,
	})
	stats.Lines = es.Lines
	stats.Distinct = es.Distinct
	stats.DistinctBytes = es.DistinctBytes
	stats.Frames = es.Frames
	stats.Elapsed = time.Since(start)

	logSummary(log, &stats)
	return stats, err
}

func logRunHeader(cfg *config.Config, log *logging.Logger, mode engine.Mode) {
	in, out := cfg.InputPath, cfg.OutputPath
	if cfg.ReadsStdin() {
		in = "<stdin>"
	}
	if cfg.WritesStdout() {
		out = "<stdout>"
	}
	if cfg.ConfigFile != "" {
		log.Debug("Config: %s", cfg.ConfigFile)
	}
	log.Debug("Mode: %s", mode)
	log.Debug("In:  %s", in)
	log.Debug("Out: %s", out)
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Debug("Lines: %d read, %d distinct, %d duplicate", stats.Lines, stats.Distinct, stats.Duplicates())
	log.Debug("Held: %s of distinct lines", display.FormatBytes(stats.DistinctBytes))
	if stats.Mode == engine.ModeCountTTY {
		log.Debug("Frames: %d", stats.Frames)
	}
	log.Debug("Elapsed: %s", stats.Elapsed.Round(time.Millisecond))
}
