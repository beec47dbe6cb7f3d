// Package chart reads arc chart (.aff) text into a model.Chart.
package chart

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	audioOffsetKey = "AudioOffset:"
	tpdfKey        = "TimingPointDensityFactor:"
)

// Reader parses one chart from a stream. It is not safe for concurrent use;
// the chart it produces is safe to share once Parse returns.
type Reader struct {
	src       io.Reader
	owned     io.Closer
	logger    *log.Logger
	chart     *model.Chart
	diags     []Diagnostic
	attempted bool
	closed    bool
}

type Option func(*Reader)

// WithLogger forwards diagnostics to l as they are found.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// NewReader reads from src. Close does not close src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{src: src}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewReaderBytes(data []byte, opts ...Option) *Reader {
	return NewReader(bytes.NewReader(append([]byte(nil), data...)), opts...)
}

// Open reads the chart at path. The file is closed by Close.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f, opts...)
	r.owned = f
	return r, nil
}

// Parse reads the whole stream and sorts every group with st. It may be
// called once; any content error is a *ParseError.
func (r *Reader) Parse(st model.SortType) error {
	if r.closed {
		return ErrClosed
	}
	if r.attempted {
		return ErrAlreadyParsed
	}
	r.attempted = true
	p := &parser{
		lines:    newLineReader(r.src),
		diagnose: r.addDiagnostic,
	}
	c, err := p.parse()
	if err != nil {
		return err
	}
	c.Sort(st)
	r.chart = c
	return nil
}

func (r *Reader) Chart() (*model.Chart, error) {
	if r.chart == nil {
		return nil, ErrNotParsed
	}
	return r.chart, nil
}

func (r *Reader) Diagnostics() []Diagnostic {
	return r.diags
}

// Close releases a file opened by Open. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.owned != nil {
		return r.owned.Close()
	}
	return nil
}

func (r *Reader) addDiagnostic(d Diagnostic) {
	r.diags = append(r.diags, d)
	if r.logger != nil {
		r.logger.Printf("arckit: %s", d)
	}
}

// Parse is a one-shot NewReader, Parse, Chart.
func Parse(src io.Reader, st model.SortType, opts ...Option) (*model.Chart, error) {
	r := NewReader(src, opts...)
	defer r.Close()
	if err := r.Parse(st); err != nil {
		return nil, err
	}
	return r.Chart()
}

func ParseFile(path string, st model.SortType, opts ...Option) (*model.Chart, error) {
	r, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := r.Parse(st); err != nil {
		return nil, err
	}
	return r.Chart()
}

// lineReader yields lines without their terminators and allows one line of
// lookahead. n is the number of the last line returned by next.
type lineReader struct {
	br      *bufio.Reader
	pending *string
	n       int
	eof     bool
}

func newLineReader(src io.Reader) *lineReader {
	bomAware := transform.NewReader(src, textunicode.BOMOverride(textunicode.UTF8.NewDecoder()))
	return &lineReader{br: bufio.NewReader(bomAware)}
}

func (lr *lineReader) read() (string, bool, error) {
	if lr.eof {
		return "", false, nil
	}
	s, err := lr.br.ReadString('\n')
	if err == io.EOF {
		lr.eof = true
		if s == "" {
			return "", false, nil
		}
	} else if err != nil {
		return "", false, err
	}
	return strings.TrimRight(s, "\r\n"), true, nil
}

func (lr *lineReader) peek() (string, bool, error) {
	if lr.pending != nil {
		return *lr.pending, true, nil
	}
	s, ok, err := lr.read()
	if err != nil || !ok {
		return "", ok, err
	}
	lr.pending = &s
	return s, true, nil
}

func (lr *lineReader) next() (string, bool, error) {
	if lr.pending != nil {
		s := *lr.pending
		lr.pending = nil
		lr.n++
		return s, true, nil
	}
	s, ok, err := lr.read()
	if ok {
		lr.n++
	}
	return s, ok, err
}

type parser struct {
	lines    *lineReader
	diagnose func(Diagnostic)
	chart    *model.Chart
	group    *model.TimingGroup
	line     int
}

func (p *parser) diagnosef(format string, args ...interface{}) {
	if p.diagnose != nil {
		p.diagnose(Diagnostic{Line: p.line, Message: fmt.Sprintf(format, args...)})
	}
}

func (p *parser) next() (string, bool, error) {
	s, ok, err := p.lines.next()
	if err != nil {
		return "", false, errors.Wrap(err, "reading chart")
	}
	if ok {
		p.line = p.lines.n
	} else {
		p.line = p.lines.n + 1
	}
	return s, ok, nil
}

func (p *parser) parse() (*model.Chart, error) {
	p.chart = model.NewChart()
	p.group = p.chart.Groups[0]
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	if err := p.parseFirstTiming(); err != nil {
		return nil, err
	}
	for {
		raw, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return p.chart, nil
		}
		if err := p.parseStatement(stripSpace(raw)); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseHeader() error {
	line, ok, err := p.next()
	if err != nil {
		return err
	}
	if !ok || !strings.HasPrefix(line, audioOffsetKey) {
		return newParseError(1, "AudioOffset: the first line doesn't start with %q", audioOffsetKey)
	}
	offset, err := strconv.Atoi(strings.TrimSpace(line[len(audioOffsetKey):]))
	if err != nil {
		return &ParseError{Line: p.line, Message: "AudioOffset: invalid integer format", cause: err}
	}
	p.chart.AudioOffset = offset

	// The density factor line is optional; anything else stays for the body.
	line, ok, err = p.lines.peek()
	if err != nil {
		return errors.Wrap(err, "reading chart")
	}
	if !ok || !strings.HasPrefix(line, tpdfKey) {
		return nil
	}
	if _, _, err := p.next(); err != nil {
		return err
	}
	factor, err := strconv.ParseFloat(strings.TrimSpace(line[len(tpdfKey):]), 64)
	if err != nil {
		return &ParseError{Line: p.line, Message: "TimingPointDensityFactor: invalid float format", cause: err}
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return newParseError(p.line, "TimingPointDensityFactor: must be a positive number")
	}
	p.chart.TimingPointDensityFactor = factor
	return nil
}

// parseFirstTiming requires the first statement after the header to be a
// timing at 0. Blank and comment lines before it are skipped: real charts
// put a "-" separator line between the header and the first timing.
func (p *parser) parseFirstTiming() error {
	var line string
	for {
		raw, ok, err := p.next()
		if err != nil {
			return err
		}
		if !ok {
			return newParseError(p.line, "the chart must start with a Timing event")
		}
		line = stripSpace(raw)
		if line != "" && !strings.HasPrefix(line, "-") {
			break
		}
	}
	if !hasKeyword(line, kwTiming) {
		return newParseError(p.line, "the chart must start with a Timing event")
	}
	ev, err := p.decodeTiming(line)
	if err != nil {
		return err
	}
	if ev.Timing != 0 {
		return newParseError(p.line, "invalid initial Timing event, the first Timing event must start at timing 0")
	}
	p.group.Add(ev)
	return nil
}

func (p *parser) parseStatement(line string) error {
	var (
		ev  model.Event
		err error
	)
	switch {
	case hasKeyword(line, kwTiming):
		ev, err = p.decodeTiming(line)
	case hasKeyword(line, kwTap):
		ev, err = p.decodeTap(line)
	case hasKeyword(line, kwHold):
		ev, err = p.decodeHold(line)
	case hasKeyword(line, kwArc):
		ev, err = p.decodeArc(line)
	case hasKeyword(line, kwCamera):
		ev, err = p.decodeCamera(line)
	case hasKeyword(line, kwSceneControl):
		ev, err = p.decodeSceneControl(line)
	case hasKeyword(line, kwTimingGroup):
		return p.openGroup(line)
	case line == kwGroupEnd:
		p.group = p.chart.Groups[0]
		return nil
	case line != "" && !strings.HasPrefix(line, "-"):
		p.diagnosef("unrecognized line %q", line)
		return nil
	default:
		return nil
	}
	if err != nil {
		return err
	}
	p.group.Add(ev)
	return nil
}

func (p *parser) openGroup(line string) error {
	if p.group.Index != 0 {
		if info, ok := model.EventInfo(model.KindTimingGroup); ok && !info.Nestable {
			p.diagnosef("timing group opened inside timing group %d; it is not nested", p.group.Index)
		}
	}
	params, err := p.decodeTimingGroup(line)
	if err != nil {
		return err
	}
	p.group = p.chart.AddGroup(params)
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
