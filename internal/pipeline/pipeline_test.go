package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/uniqs/internal/config"
	"github.com/backmassage/uniqs/internal/engine"
	"github.com/backmassage/uniqs/internal/logging"
)

// --- helpers ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newTestLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	l, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

// --- Run ---

func TestRun_FileToFile(t *testing.T) {
	tests := []struct {
		name     string
		count    bool
		want     string
		wantMode engine.Mode
	}{
		{"dedup", false, "a\nb\nc\n", engine.ModeDedup},
		{"count to a file is batch mode", true, "      5 a\n      4 b\n      3 c\n", engine.ModeCountBatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := config.DefaultConfig()
			cfg.Count = tt.count
			cfg.InputPath = writeFile(t, dir, "in.txt", "a\na\na\nb\nb\nc\nc\na\na\nb\nb\nc\n")
			cfg.OutputPath = filepath.Join(dir, "out.txt")

			stats, err := Run(context.Background(), &cfg, newTestLogger(t, &cfg))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := readFile(t, cfg.OutputPath); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if stats.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", stats.Mode, tt.wantMode)
			}
			if stats.Lines != 12 || stats.Distinct != 3 || stats.Duplicates() != 9 {
				t.Errorf("stats = %+v", stats)
			}
		})
	}
}

func TestRun_StandardStreams(t *testing.T) {
	dir := t.TempDir()
	inPath := writeFile(t, dir, "stdin", "x\ny\nx\n")
	stdin, err := os.Open(inPath)
	if err != nil {
		t.Fatal(err)
	}
	defer stdin.Close()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	if err != nil {
		t.Fatal(err)
	}
	defer stdout.Close()

	cfg := config.DefaultConfig()
	cfg.InputPath = "-"
	if _, err := run(context.Background(), &cfg, newTestLogger(t, &cfg), streams{stdin: stdin, stdout: stdout}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := readFile(t, stdout.Name()); got != "x\ny\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRun_TruncatesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputPath = writeFile(t, dir, "in.txt", "a\n")
	cfg.OutputPath = writeFile(t, dir, "out.txt", "old content that is longer\n")

	if _, err := Run(context.Background(), &cfg, newTestLogger(t, &cfg)); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, cfg.OutputPath); got != "a\n" {
		t.Errorf("output = %q, want %q", got, "a\n")
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputPath = filepath.Join(dir, "nope.txt")
	cfg.OutputPath = filepath.Join(dir, "out.txt")

	_, err := Run(context.Background(), &cfg, newTestLogger(t, &cfg))
	var openErr *OpenError
	if !errors.As(err, &openErr) || openErr.Role != "input" {
		t.Fatalf("error = %v, want input *OpenError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap ErrNotExist: %v", err)
	}
	if _, err := os.Stat(cfg.OutputPath); err == nil {
		t.Error("output created although input could not be opened")
	}
}

func TestRun_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputPath = writeFile(t, dir, "in.txt", "a\n")
	cfg.OutputPath = filepath.Join(dir, "missing-dir", "out.txt")

	_, err := Run(context.Background(), &cfg, newTestLogger(t, &cfg))
	var openErr *OpenError
	if !errors.As(err, &openErr) || openErr.Role != "output" {
		t.Errorf("error = %v, want output *OpenError", err)
	}
}

func TestRun_RefusesToOverwriteInput(t *testing.T) {
	tests := []struct {
		name   string
		output func(t *testing.T, dir, in string) string
	}{
		{"same path", func(_ *testing.T, _, in string) string { return in }},
		{"symlink to input", func(t *testing.T, dir, in string) string {
			link := filepath.Join(dir, "link.txt")
			if err := os.Symlink(in, link); err != nil {
				t.Skipf("symlinks unavailable: %v", err)
			}
			return link
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := config.DefaultConfig()
			cfg.InputPath = writeFile(t, dir, "in.txt", "a\na\n")
			cfg.OutputPath = tt.output(t, dir, cfg.InputPath)

			_, err := Run(context.Background(), &cfg, newTestLogger(t, &cfg))
			if !errors.Is(err, ErrSameFile) {
				t.Fatalf("error = %v, want ErrSameFile", err)
			}
			if got := readFile(t, cfg.InputPath); got != "a\na\n" {
				t.Errorf("input was modified: %q", got)
			}
		})
	}
}

func TestRun_Interrupted(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputPath = writeFile(t, dir, "in.txt", "a\n")
	cfg.OutputPath = filepath.Join(dir, "out.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &cfg, newTestLogger(t, &cfg))
	if !engine.IsInterrupted(err) {
		t.Errorf("error = %v, want interruption", err)
	}
}
