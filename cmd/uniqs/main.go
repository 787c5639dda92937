// Command uniqs is the CLI entrypoint: a uniq(1) alternative that drops
// repeated lines globally while streaming, or counts them with -c.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/uniqs/internal/config"
	"github.com/backmassage/uniqs/internal/engine"
	"github.com/backmassage/uniqs/internal/logging"
	"github.com/backmassage/uniqs/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. Flag and config errors go straight to stderr
	// because the logger depends on the resolved config.
	cfg := config.DefaultConfig()
	code := 0
	root := config.NewRootCommand(&cfg, version, func(*cobra.Command) error {
		code = execute(&cfg)
		return nil
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "uniqs: %v\n", err)
		return 1
	}
	return code
}

func execute(cfg *config.Config) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uniqs: %v\n", err)
		return 1
	}
	defer log.Close()

	log.Debug("uniqs v%s (%s)", version, commit)

	// Phase 2: Signal handling. The first signal cancels the run so the
	// terminal is restored; a second one exits immediately.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		log.Debug("Received interrupt, stopping")
		cancel()
		<-sigCh
		os.Exit(exitInterrupted)
	}()

	// Phase 3: Run the selected engine.
	_, err = pipeline.Run(ctx, cfg, log)
	return exitCode(err, func(err error) { log.Error("%v", err) })
}

// exitCode maps the result of a run to the process exit status. report is
// called for failures worth telling the user about.
func exitCode(err error, report func(error)) int {
	switch {
	case err == nil:
		return 0
	case engine.IsInterrupted(err):
		return exitInterrupted
	case engine.IsBrokenPipe(err):
		// The reader went away (e.g. `uniqs | head`); nothing to report.
		return 1
	default:
		report(err)
		return 1
	}
}
