package ioengine

import (
	"bufio"
	"io"
	"strconv"

	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/policy"
)

const recentHistorySize = 5

// Cursor wraps an input stream, tokenizing it under a
// whitespace/numeric strictness policy while tracking 1-based
// line/column and a short history of recently read tokens for error
// diagnostics.
type Cursor struct {
	r    *bufio.Reader
	ws   policy.WhitespaceStrictness
	num  policy.NumericStrictness
	line int
	col  int
	recent []string
}

// NewCursor wraps r for reading under the given strictness policies.
func NewCursor(r io.Reader, ws policy.WhitespaceStrictness, num policy.NumericStrictness) *Cursor {
	return &Cursor{r: bufio.NewReader(r), ws: ws, num: num, line: 1, col: 1}
}

func (c *Cursor) remember(tok string) {
	c.recent = append(c.recent, tok)
	if len(c.recent) > recentHistorySize {
		c.recent = c.recent[len(c.recent)-recentHistorySize:]
	}
}

func (c *Cursor) ioError(message string) error {
	return &mverrors.IOError{Line: c.line, Col: c.col, Message: message, RecentlyRead: append([]string(nil), c.recent...)}
}

func (c *Cursor) readByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b, nil
}

func (c *Cursor) peekByte() (byte, bool) {
	b, err := c.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

// ReadWhitespace consumes exactly one whitespace character. Under
// Precise strictness it must equal want; under Flexible any whitespace
// byte is accepted.
func (c *Cursor) ReadWhitespace(want policy.Whitespace) error {
	b, err := c.readByte()
	if err == io.EOF {
		return c.ioError("expected whitespace but reached end of file")
	}
	if err != nil {
		return err
	}
	if !policy.IsWhitespaceByte(b) {
		return c.ioError("expected whitespace, found " + strconv.QuoteRune(rune(b)))
	}
	if c.ws == policy.Precise && b != want.Byte() {
		return c.ioError("expected " + want.String() + ", found " + strconv.QuoteRune(rune(b)))
	}
	c.remember(string(b))
	return nil
}

// ReadToken reads a maximal run of non-whitespace characters. Under
// Flexible strictness, leading whitespace is skipped first. Reaching
// EOF before any character is consumed is an IOError.
func (c *Cursor) ReadToken() (string, error) {
	if c.ws == policy.Flexible {
		for {
			b, ok := c.peekByte()
			if !ok || !policy.IsWhitespaceByte(b) {
				break
			}
			if _, err := c.readByte(); err != nil {
				return "", err
			}
		}
	} else if b, ok := c.peekByte(); ok && policy.IsWhitespaceByte(b) {
		return "", c.ioError("expected a token, found whitespace")
	}

	var buf []byte
	for {
		b, ok := c.peekByte()
		if !ok || policy.IsWhitespaceByte(b) {
			break
		}
		nb, err := c.readByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, nb)
	}
	if len(buf) == 0 {
		return "", c.ioError("expected a token but reached end of file")
	}
	tok := string(buf)
	c.remember(tok)
	return tok, nil
}

// ReadEOF requires the stream to be exhausted. Under Flexible
// strictness, trailing whitespace is skipped first.
func (c *Cursor) ReadEOF() error {
	if c.ws == policy.Flexible {
		for {
			b, ok := c.peekByte()
			if !ok {
				break
			}
			if !policy.IsWhitespaceByte(b) {
				break
			}
			if _, err := c.readByte(); err != nil {
				return err
			}
		}
	}
	if _, ok := c.peekByte(); ok {
		return c.ioError("expected end of file but more input remains")
	}
	return nil
}

// ReadInt reads one token and parses it as a signed 64-bit integer,
// rejecting a leading '+', a "-0", or unnecessary leading zeros when
// the cursor's numeric strictness is Precise.
func (c *Cursor) ReadInt() (int64, error) {
	tok, err := c.ReadToken()
	if err != nil {
		return 0, err
	}
	if c.num == policy.NumericPrecise {
		if err := checkPreciseIntFormat(tok); err != nil {
			return 0, c.ioError(err.Error())
		}
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, c.ioError("could not parse " + strconv.Quote(tok) + " as an integer")
	}
	return n, nil
}

func checkPreciseIntFormat(tok string) error {
	s := tok
	if s == "" {
		return &formatErr{"empty integer token"}
	}
	if s[0] == '+' {
		return &formatErr{"leading '+' is not allowed"}
	}
	neg := s[0] == '-'
	digits := s
	if neg {
		digits = s[1:]
	}
	if digits == "" {
		return &formatErr{"missing digits"}
	}
	for _, b := range []byte(digits) {
		if b < '0' || b > '9' {
			return &formatErr{"contains a non-digit character"}
		}
	}
	if digits == "0" && neg {
		return &formatErr{"\"-0\" is not allowed"}
	}
	if len(digits) > 1 && digits[0] == '0' {
		return &formatErr{"unnecessary leading zero"}
	}
	return nil
}

type formatErr struct{ msg string }

func (e *formatErr) Error() string { return e.msg }

// Position returns the cursor's current 1-based line and column.
func (c *Cursor) Position() (line, col int) { return c.line, c.col }
