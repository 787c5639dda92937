package term

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/backmassage/uniqs/internal/config"
)

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil file reported as terminal")
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		mode config.ColorMode
		want bool
	}{
		{"always", config.ColorAlways, true},
		{"never", config.ColorNever, false},
		{"auto on a regular file", config.ColorAuto, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorEnabled(tt.mode, f); got != tt.want {
				t.Errorf("ColorEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestNewSink_BufferIsNotTerminal(t *testing.T) {
	s := NewSink(&bytes.Buffer{})
	if s.IsTerminal() {
		t.Error("bytes.Buffer sink reported as terminal")
	}
	if _, _, err := s.Size(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Size() error = %v, want ErrNotTerminal", err)
	}
}

func TestSink_BuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	if err := s.WriteLine([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("write reached the buffer before Flush: %q", buf.String())
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc\n" {
		t.Errorf("got %q, want %q", buf.String(), "abc\n")
	}
}

func TestSink_FlushError(t *testing.T) {
	boom := errors.New("disk full")
	s := NewSink(failWriter{boom})
	_, _ = s.WriteString("x")
	if err := s.Flush(); !errors.Is(err, boom) {
		t.Errorf("Flush() error = %v, want %v", err, boom)
	}
}

func TestSink_MoveToIsZeroBased(t *testing.T) {
	var buf bytes.Buffer
	s := NewSinkWith(&buf, true, nil)
	_ = s.MoveTo(0, 3)
	_ = s.Flush()
	if want := ansi.CursorPosition(1, 4); buf.String() != want {
		t.Errorf("MoveTo(0, 3) = %q, want %q", buf.String(), want)
	}
}

func TestSink_SizeFunc(t *testing.T) {
	s := NewSinkWith(&bytes.Buffer{}, true, func() (int, int, error) { return 80, 24, nil })
	w, h, err := s.Size()
	if err != nil || w != 80 || h != 24 {
		t.Errorf("Size() = (%d, %d, %v), want (80, 24, nil)", w, h, err)
	}
}

func TestSurface_AcquireRelease(t *testing.T) {
	var buf bytes.Buffer
	s := NewSinkWith(&buf, true, nil)
	surf, err := Acquire(s)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !surf.Active() {
		t.Error("surface should be active after Acquire")
	}
	if err := surf.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if surf.Active() {
		t.Error("surface should be inactive after Release")
	}

	want := ansi.SetAltScreenSaveCursorMode + ansi.ResetAutoWrapMode +
		ansi.SetAutoWrapMode + ansi.ResetAltScreenSaveCursorMode
	if buf.String() != want {
		t.Errorf("sequence = %q, want %q", buf.String(), want)
	}
}

func TestSurface_ReleaseIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	surf, err := Acquire(NewSinkWith(&buf, true, nil))
	if err != nil {
		t.Fatal(err)
	}
	_ = surf.Release()
	_ = surf.Release()
	if n := strings.Count(buf.String(), ansi.ResetAltScreenSaveCursorMode); n != 1 {
		t.Errorf("leave-alt-screen written %d times, want 1", n)
	}
}

func TestSurface_ReleaseReportsFlushError(t *testing.T) {
	boom := errors.New("tty gone")
	surf, err := Acquire(NewSinkWith(failWriter{boom}, true, nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := surf.Release(); !errors.Is(err, boom) {
		t.Errorf("Release() error = %v, want %v", err, boom)
	}
	if err := surf.Release(); !errors.Is(err, boom) {
		t.Errorf("second Release() error = %v, want remembered %v", err, boom)
	}
}

func TestSurface_DrawAfterReleaseIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	surf, err := Acquire(NewSinkWith(&buf, true, nil))
	if err != nil {
		t.Fatal(err)
	}
	_ = surf.Release()
	called := false
	if err := surf.Draw(func() error { called = true; return nil }); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if called {
		t.Error("Draw ran on a released surface")
	}
}

func TestSurface_ReleaseWaitsForDraw(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSinkWith(&buf, true, nil)
	surf, err := Acquire(sink)
	if err != nil {
		t.Fatal(err)
	}
	released := make(chan struct{})
	err = surf.Draw(func() error {
		go func() {
			_ = surf.Release()
			close(released)
		}()
		time.Sleep(20 * time.Millisecond)
		select {
		case <-released:
			t.Error("Release completed in the middle of a frame")
		default:
		}
		_, err := sink.WriteString("frame")
		return err
	})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	<-released

	want := "frame" + ansi.SetAutoWrapMode + ansi.ResetAltScreenSaveCursorMode
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("frame not completed before the screen was restored: %q", buf.String())
	}
}
