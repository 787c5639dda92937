package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/uniqs/internal/config"
)

// OpenError is a failure to open the named input or output path.
type OpenError struct {
	Role string // "input" or "output".
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s %s: %v", e.Role, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ErrSameFile is returned when OUTPUT names the file being read, which
// would truncate the input before it is consumed.
var ErrSameFile = errors.New("output is the same file as input")

// streams holds the process's standard streams so tests can substitute them.
type streams struct {
	stdin  *os.File
	stdout *os.File
}

// openInput opens INPUT, or returns stdin for "" and "-". The returned
// close func is a no-op for stdin.
func openInput(cfg *config.Config, std streams) (*os.File, func() error, error) {
	if cfg.ReadsStdin() {
		return std.stdin, func() error { return nil }, nil
	}
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, nil, &OpenError{Role: "input", Path: cfg.InputPath, Err: err}
	}
	return f, f.Close, nil
}

// openOutput creates (or truncates) OUTPUT, or returns stdout when no
// path was given. in is checked first so the input is never truncated.
func openOutput(cfg *config.Config, std streams, in *os.File) (*os.File, func() error, error) {
	if cfg.WritesStdout() {
		return std.stdout, func() error { return nil }, nil
	}
	if err := checkNotSameFile(cfg.OutputPath, in); err != nil {
		return nil, nil, &OpenError{Role: "output", Path: cfg.OutputPath, Err: err}
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, &OpenError{Role: "output", Path: cfg.OutputPath, Err: err}
	}
	return f, f.Close, nil
}

// checkNotSameFile reports ErrSameFile when path already exists and is
// the file behind in. Pipes and terminals never match a regular file.
func checkNotSameFile(path string, in *os.File) error {
	outInfo, err := os.Stat(path)
	if err != nil {
		return nil // Does not exist yet; os.Create reports real problems.
	}
	inInfo, err := in.Stat()
	if err != nil || !inInfo.Mode().IsRegular() {
		return nil
	}
	if os.SameFile(inInfo, outInfo) {
		return ErrSameFile
	}
	return nil
}
