package token

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Delimiters that end a token.
const Delimiters = ",)"

var ErrNoTerminator = errors.New("terminator not found")

// Cursor reads delimiter-terminated values from a single statement. It is a
// value type: copying a Cursor gives an independent position over the same text.
type Cursor struct {
	src string
}

func New(line string) Cursor {
	return Cursor{src: line}
}

// Remaining returns the unread text.
func (c Cursor) Remaining() string { return c.src }

func (c Cursor) Done() bool { return c.src == "" }

// Current returns the rune at the cursor, or 0 at the end of input.
func (c Cursor) Current() rune {
	if c.src == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src)
	return r
}

// Skip advances by n runes, stopping early at the end of input.
func (c *Cursor) Skip(n int) {
	for i := 0; i < n && c.src != ""; i++ {
		_, size := utf8.DecodeRuneInString(c.src)
		c.src = c.src[size:]
	}
}

// Peek returns the n-th byte ahead (1-based) without consuming it.
func (c Cursor) Peek(n int) (byte, error) {
	if n < 1 {
		return 0, errors.Errorf("peek count must be positive, got %d", n)
	}
	if n > len(c.src) {
		return 0, errors.Errorf("cannot peek %d past the end of %q", n, c.src)
	}
	return c.src[n-1], nil
}

// PeekRune returns the n-th rune ahead (1-based) without consuming it.
func (c Cursor) PeekRune(n int) (rune, error) {
	if n < 1 {
		return 0, errors.Errorf("peek count must be positive, got %d", n)
	}
	rest := c.src
	var r rune
	for i := 0; i < n; i++ {
		if rest == "" {
			return 0, errors.Errorf("cannot peek %d runes past the end", n)
		}
		var size int
		r, size = utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	return r, nil
}

// next consumes the text up to and including the next delimiter.
func (c *Cursor) next() (string, byte, error) {
	idx := strings.IndexAny(c.src, Delimiters)
	if idx == -1 {
		return "", 0, errors.Wrapf(ErrNoTerminator, "in %q", c.src)
	}
	tok, term := c.src[:idx], c.src[idx]
	c.src = c.src[idx+1:]
	return tok, term, nil
}

func (c *Cursor) ReadInt() (int, error) {
	tok, _, err := c.next()
	if err != nil {
		return 0, err
	}
	return parseInt(tok)
}

func (c *Cursor) ReadFloat() (float64, error) {
	tok, _, err := c.next()
	if err != nil {
		return 0, err
	}
	return parseFloat(tok)
}

func (c *Cursor) ReadBool() (bool, error) {
	tok, _, err := c.next()
	if err != nil {
		return false, err
	}
	return parseBool(tok)
}

func (c *Cursor) ReadString() (string, error) {
	tok, _, err := c.next()
	return tok, err
}

// ReadStringMore is ReadString that also reports whether the consumed
// delimiter was a comma, meaning more items follow.
func (c *Cursor) ReadStringMore() (string, bool, error) {
	tok, term, err := c.next()
	return tok, term == ',', err
}

// TryReadInt advances only when the next token is an integer.
func (c *Cursor) TryReadInt() (int, bool) {
	probe := *c
	v, err := probe.ReadInt()
	if err != nil {
		return 0, false
	}
	*c = probe
	return v, true
}

func (c *Cursor) TryReadFloat() (float64, bool) {
	probe := *c
	v, err := probe.ReadFloat()
	if err != nil {
		return 0, false
	}
	*c = probe
	return v, true
}

func (c *Cursor) TryReadBool() (bool, bool) {
	probe := *c
	v, err := probe.ReadBool()
	if err != nil {
		return false, false
	}
	*c = probe
	return v, true
}

func parseInt(tok string) (int, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer %q", tok)
	}
	return int(v), nil
}

func parseFloat(tok string) (float64, error) {
	// strconv also takes hex floats and digit separators; chart numbers never use them
	if strings.ContainsAny(tok, "xX_") {
		return 0, errors.Errorf("invalid float %q", tok)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if errors.Is(err, strconv.ErrRange) {
		// overflow reads as ±Inf, left for callers to reject
		return v, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "invalid float %q", tok)
	}
	return v, nil
}

func parseBool(tok string) (bool, error) {
	switch {
	case strings.EqualFold(tok, "true"):
		return true, nil
	case strings.EqualFold(tok, "false"):
		return false, nil
	}
	return false, errors.Errorf("invalid boolean %q", tok)
}
