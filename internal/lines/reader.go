// Package lines provides the line source the engines read from and the
// two containers they keep lines in: a membership set and an
// insertion-ordered count map.
package lines

import (
	"bufio"
	"errors"
	"io"
)

// Source yields lines one at a time. Next returns io.EOF once input is
// exhausted; any other error is an input fault. The returned slice is only
// valid until the following call.
type Source interface {
	Next() ([]byte, error)
}

// Reader splits an io.Reader on '\n'. Lines exclude the delimiter; a
// trailing line without a final newline is still returned. There is no
// maximum line length.
type Reader struct {
	br  *bufio.Reader
	buf []byte
	err error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line. After the first error (including io.EOF)
// every later call returns that same error.
func (r *Reader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.buf = r.buf[:0]
	for {
		chunk, err := r.br.ReadSlice('\n')
		switch {
		case err == nil:
			if len(r.buf) == 0 {
				// Whole line fit in the bufio buffer: no copy needed.
				return chunk[:len(chunk)-1], nil
			}
			r.buf = append(r.buf, chunk...)
			return r.buf[:len(r.buf)-1], nil
		case errors.Is(err, bufio.ErrBufferFull):
			r.buf = append(r.buf, chunk...)
		case errors.Is(err, io.EOF):
			r.err = io.EOF
			r.buf = append(r.buf, chunk...)
			if len(r.buf) > 0 {
				return r.buf, nil
			}
			return nil, io.EOF
		default:
			// A partially read line is dropped; the fault is what matters.
			r.err = err
			return nil, err
		}
	}
}
