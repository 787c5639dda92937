package term

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
	xterm "github.com/charmbracelet/x/term"
)

// ErrNotTerminal is returned by [Sink.Size] when the sink is not attached
// to a terminal and has no size source.
var ErrNotTerminal = errors.New("output is not a terminal")

// SizeFunc reports the terminal width and height in cells.
type SizeFunc func() (width, height int, err error)

// Sink is a buffered byte sink that also knows whether it is attached to a
// terminal and can issue the few control sequences interactive mode needs.
// Methods are safe for concurrent use so an interrupt handler can restore
// the screen while the engine is mid-write.
type Sink struct {
	mu   sync.Mutex
	w    *bufio.Writer
	tty  bool
	size SizeFunc
}

type fder interface {
	Fd() uintptr
}

// NewSink wraps w. When w exposes a file descriptor (e.g. *os.File) the
// terminal flag and size are taken from it.
func NewSink(w io.Writer) *Sink {
	s := &Sink{w: bufio.NewWriterSize(w, 64*1024)}
	if f, ok := w.(fder); ok {
		fd := f.Fd()
		if xterm.IsTerminal(fd) {
			s.tty = true
			s.size = func() (int, int, error) { return xterm.GetSize(fd) }
		}
	}
	return s
}

// NewSinkWith wraps w with an explicit terminal flag and size source. Used
// for pseudo-terminals and in tests.
func NewSinkWith(w io.Writer, tty bool, size SizeFunc) *Sink {
	return &Sink{w: bufio.NewWriterSize(w, 64*1024), tty: tty, size: size}
}

// IsTerminal reports whether the sink is attached to a terminal.
func (s *Sink) IsTerminal() bool { return s.tty }

// Size queries the current terminal dimensions.
func (s *Sink) Size() (width, height int, err error) {
	if s.size == nil {
		return 0, 0, ErrNotTerminal
	}
	return s.size()
}

func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *Sink) WriteString(str string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.WriteString(str)
}

// WriteLine writes line followed by a single newline.
func (s *Sink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes any buffered bytes to the underlying writer.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

// MoveTo positions the cursor at the zero-based (col, row).
func (s *Sink) MoveTo(col, row int) error {
	_, err := s.WriteString(ansi.CursorPosition(col+1, row+1))
	return err
}

// EnterAltScreen switches to the alternate screen buffer.
func (s *Sink) EnterAltScreen() error {
	_, err := s.WriteString(ansi.SetAltScreenSaveCursorMode)
	return err
}

// LeaveAltScreen restores the main screen buffer.
func (s *Sink) LeaveAltScreen() error {
	_, err := s.WriteString(ansi.ResetAltScreenSaveCursorMode)
	return err
}

// DisableLineWrap stops the terminal from wrapping long lines, so they are
// clipped at the right edge.
func (s *Sink) DisableLineWrap() error {
	_, err := s.WriteString(ansi.ResetAutoWrapMode)
	return err
}

// EnableLineWrap restores automatic line wrapping.
func (s *Sink) EnableLineWrap() error {
	_, err := s.WriteString(ansi.SetAutoWrapMode)
	return err
}
