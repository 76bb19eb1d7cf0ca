package ioengine

import (
	"bufio"
	"io"
	"strconv"

	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/policy"
)

// Writer mirrors Cursor on the output side: write_token and
// write_whitespace emit the exact bytes requested. A write failure on
// the underlying stream is surfaced, never swallowed.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteToken emits s verbatim.
func (w *Writer) WriteToken(s string) error {
	if _, err := w.w.WriteString(s); err != nil {
		return &mverrors.IOError{Message: "writing token: " + err.Error()}
	}
	return nil
}

// WriteWhitespace emits the single byte ws represents.
func (w *Writer) WriteWhitespace(ws policy.Whitespace) error {
	if err := w.w.WriteByte(ws.Byte()); err != nil {
		return &mverrors.IOError{Message: "writing whitespace: " + err.Error()}
	}
	return nil
}

// WriteInt formats n in canonical (Precise-readable) form and writes
// it as a token.
func (w *Writer) WriteInt(n int64) error {
	return w.WriteToken(strconv.FormatInt(n, 10))
}

// Flush flushes any buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return &mverrors.IOError{Message: "flushing output: " + err.Error()}
	}
	return nil
}
