package mkconfgen

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Cursor supplies input one character at a time.
//
// Next returns ok=false once the input is exhausted or the underlying source
// failed. Err distinguishes the two: it is nil after a clean end of input and
// reports the failure otherwise. Every call to Next may be the last.
type Cursor interface {
	Next() (r rune, ok bool)
	Err() error
}

// BufferCursor walks a fully materialized character sequence.
type BufferCursor struct {
	buf []rune
	pos int
}

// NewBufferCursor returns a Cursor over buf. The slice is not copied.
func NewBufferCursor(buf []rune) *BufferCursor { return &BufferCursor{buf: buf} }

// NewStringCursor returns a Cursor over the characters of s.
func NewStringCursor(s string) *BufferCursor { return NewBufferCursor([]rune(s)) }

func (c *BufferCursor) Next() (rune, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	r := c.buf[c.pos]
	c.pos++
	return r, true
}

func (c *BufferCursor) Err() error { return nil }

// Len reports the total length of the underlying buffer.
func (c *BufferCursor) Len() int { return len(c.buf) }

// NextFunc pulls the next character from a stream. more is false at end of
// input; a non-nil err is an abnormal stop and also ends the input.
type NextFunc func() (r rune, more bool, err error)

// FuncCursor adapts a pull function to a Cursor.
type FuncCursor struct {
	next NextFunc
	done bool
	err  error
}

// NewFuncCursor returns a Cursor that calls next until it reports the end of
// input or an error.
func NewFuncCursor(next NextFunc) *FuncCursor { return &FuncCursor{next: next} }

func (c *FuncCursor) Next() (rune, bool) {
	if c.done {
		return 0, false
	}
	r, more, err := c.next()
	if err != nil {
		c.done, c.err = true, err
		return 0, false
	}
	if !more {
		c.done = true
		return 0, false
	}
	return r, true
}

func (c *FuncCursor) Err() error { return c.err }

// NewReaderCursor returns a streaming Cursor decoding UTF-8 from r. A leading
// byte order mark is skipped and invalid sequences decode to U+FFFD.
func NewReaderCursor(r io.Reader) *FuncCursor {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	br := bufio.NewReader(transform.NewReader(r, dec))
	return NewFuncCursor(func() (rune, bool, error) {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return ch, true, nil
	})
}

// ReadAll drains cur into a slice. It returns the characters read so far
// together with cur.Err().
func ReadAll(cur Cursor) ([]rune, error) {
	var out []rune
	for {
		r, ok := cur.Next()
		if !ok {
			return out, cur.Err()
		}
		out = append(out, r)
	}
}
