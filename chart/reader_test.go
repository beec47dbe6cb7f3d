package chart

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func parseString(t *testing.T, src string) (*model.Chart, []Diagnostic, error) {
	t.Helper()
	r := NewReader(strings.NewReader(src))
	defer r.Close()
	if err := r.Parse(model.SortByTiming); err != nil {
		return nil, r.Diagnostics(), err
	}
	c, err := r.Chart()
	require.NoError(t, err)
	return c, r.Diagnostics(), nil
}

func mustParse(t *testing.T, src string) *model.Chart {
	t.Helper()
	c, _, err := parseString(t, src)
	require.NoError(t, err)
	return c
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, _, err := parseString(t, src)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "not a ParseError: %v", err)
	return pe
}

func TestParsesTapsOnIntegerAndFractionalLanes(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:248",
		"-",
		"timing(0,126.00,4.00);",
		"(1000,2);",
		"(1000,0.75);",
	))

	assert := assert.New(t)
	assert.Equal(248, c.AudioOffset)
	assert.Equal(1.0, c.TimingPointDensityFactor)
	require.Equal(t, 1, c.GroupCount())
	events := c.Groups[0].Events
	require.Len(t, events, 3)

	timing := events[0].(*model.Timing)
	assert.Equal(0, timing.Timing)
	assert.Equal(126.0, timing.BPM)
	assert.Equal(4.0, timing.BeatsPerLine)

	// a fractional lane has Track 0, so it sorts before track 2
	frac := events[1].(*model.Tap)
	assert.True(frac.Fractional())
	assert.Equal(0.75, *frac.TrackF)
	whole := events[2].(*model.Tap)
	assert.False(whole.Fractional())
	assert.Equal(2, whole.Track)
}

func TestDensityFactorLine(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:0",
		"TimingPointDensityFactor:1.5",
		"timing(0,100.00,4.00);",
	))
	assert.Equal(t, 1.5, c.TimingPointDensityFactor)
	assert.Len(t, c.Groups[0].Events, 1)
}

func TestMissingDensityFactorLeavesLineForBody(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:-20",
		"timing(0,100.00,4.00);",
		"(500,1);",
	))
	assert := assert.New(t)
	assert.Equal(-20, c.AudioOffset)
	assert.Equal(1.0, c.TimingPointDensityFactor)
	assert.Len(c.Groups[0].Events, 2)
}

func TestBadDensityFactor(t *testing.T) {
	pe := parseErr(t, lines("AudioOffset:0", "TimingPointDensityFactor:0", "timing(0,100,4);"))
	assert.Equal(t, 2, pe.Line)

	pe = parseErr(t, lines("AudioOffset:0", "TimingPointDensityFactor:abc", "timing(0,100,4);"))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "TimingPointDensityFactor: invalid float format", pe.Message)
}

func TestHeaderErrors(t *testing.T) {
	assert := assert.New(t)

	pe := parseErr(t, "")
	assert.Equal(1, pe.Line)
	assert.Contains(pe.Message, "AudioOffset")

	pe = parseErr(t, lines("Offset:0", "timing(0,100,4);"))
	assert.Equal(1, pe.Line)

	pe = parseErr(t, lines("AudioOffset:abc", "timing(0,100,4);"))
	assert.Equal(1, pe.Line)
	assert.Equal("AudioOffset: invalid integer format", pe.Message)
	assert.NotNil(errors.Cause(pe))
}

func TestFirstTimingRequired(t *testing.T) {
	assert := assert.New(t)

	pe := parseErr(t, lines("AudioOffset:0", "(100,1);"))
	assert.Equal(2, pe.Line)
	assert.Equal("the chart must start with a Timing event", pe.Message)

	pe = parseErr(t, lines("AudioOffset:0"))
	assert.Equal(2, pe.Line)

	pe = parseErr(t, lines("AudioOffset:0", "-", "timing(100,100,4);"))
	assert.Equal(3, pe.Line)
	assert.Contains(pe.Message, "timing 0")
}

func TestBeatsPerLine(t *testing.T) {
	assert := assert.New(t)

	c := mustParse(t, lines("AudioOffset:0", "timing(0,120.00,-4.00);"))
	timing := c.Groups[0].Events[0].(*model.Timing)
	assert.Equal(-120.0, timing.BPM)
	assert.Equal(4.0, timing.BeatsPerLine)

	c = mustParse(t, lines("AudioOffset:0", "timing(0,-120.00,-4.00);"))
	timing = c.Groups[0].Events[0].(*model.Timing)
	assert.Equal(120.0, timing.BPM)
	assert.Equal(4.0, timing.BeatsPerLine)

	c = mustParse(t, lines("AudioOffset:0", "timing(0,0.00,0.00);"))
	timing = c.Groups[0].Events[0].(*model.Timing)
	assert.Equal(0.0, timing.BPM)
	assert.Equal(4.0, timing.BeatsPerLine)

	pe := parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "timing(1000,120.00,0.00);"))
	assert.Equal(3, pe.Line)
	assert.Equal("Timing: BeatsPerLine cannot be zero when BPM is not zero", pe.Message)
}

func TestHold(t *testing.T) {
	c := mustParse(t, lines("AudioOffset:0", "timing(0,100,4);", "hold(1000,1500,3);"))
	hold := c.Groups[0].Events[1].(*model.Hold)
	assert := assert.New(t)
	assert.Equal(1000, hold.Timing)
	assert.Equal(1500, hold.EndTiming)
	assert.Equal(3, hold.Track)
	assert.Equal(1500, model.End(hold))
}

func TestTrackOutOfRange(t *testing.T) {
	pe := parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "(100,1);", "(200,6);"))
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, "Tap: track index out of range (must be between 0 and 5)", pe.Message)

	pe = parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "hold(100,200,-1);"))
	assert.Equal(t, "Hold: track index out of range (must be between 0 and 5)", pe.Message)
}

func TestGenericFormatErrorKeepsCause(t *testing.T) {
	pe := parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "(abc,1);"))
	assert := assert.New(t)
	assert.Equal(3, pe.Line)
	assert.Equal("invalid Tap format", pe.Message)
	assert.Error(errors.Cause(pe))
	assert.Equal("line 3: invalid Tap format", pe.Error())
}

func TestArcWithArcTaps(t *testing.T) {
	c, diags, err := parseString(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.0,1.0,s,0.0,1.0,0,none,true)[arctap(500);];",
	))
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Empty(diags)

	arc := c.Groups[0].Events[1].(*model.Arc)
	assert.Equal(model.ArcTraceVoid, arc.Type)
	assert.Equal(model.CurveStraight, arc.Curve)
	assert.Equal("none", arc.Sfx)
	assert.Equal(1.0, arc.Smoothness)
	require.Len(t, arc.ArcTaps, 1)
	assert.Equal(500, arc.ArcTaps[0].Timing)
	assert.Equal(model.Vec2{X: 0.5, Y: 0.5}, arc.ArcTaps[0].Position)
}

func TestArcWithoutArcTapsAndSmoothness(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(100,900,-0.25,1.25,sisi,0.00,1.00,3,glass_wav,designant,2.5);",
	))
	arc := c.Groups[0].Events[1].(*model.Arc)
	assert := assert.New(t)
	assert.Equal(model.CurveSiSi, arc.Curve)
	assert.Equal(model.ColorGray, arc.Color)
	assert.Equal("glass_wav", arc.Sfx)
	assert.Equal(model.ArcTraceDesignant, arc.Type)
	assert.Equal(2.5, arc.Smoothness)
	assert.NotNil(arc.ArcTaps)
	assert.Empty(arc.ArcTaps)
}

func TestSolidArcWithArcTapsBecomesTrace(t *testing.T) {
	c, diags, err := parseString(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.00,1.00,s,1.00,1.00,0,none,false)[arctap(250),arctap(750)];",
	))
	require.NoError(t, err)
	assert := assert.New(t)

	arc := c.Groups[0].Events[1].(*model.Arc)
	assert.Equal(model.ArcTraceVoid, arc.Type)
	require.Len(t, arc.ArcTaps, 2)
	assert.Equal(model.Vec2{X: 0.25, Y: 1}, arc.ArcTaps[0].Position)
	assert.Equal(model.Vec2{X: 0.75, Y: 1}, arc.ArcTaps[1].Position)
	assert.Equal(2, c.ArcTapCount())

	require.Len(t, diags, 1)
	assert.Equal(3, diags[0].Line)
	assert.Contains(diags[0].Message, "trace arc")
}

func TestSolidArcColor(t *testing.T) {
	pe := parseErr(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.00,1.00,s,1.00,1.00,4,none,false);",
	))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Message, "invalid color for a solid arc")

	// trace arcs keep any color code
	c := mustParse(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.00,1.00,s,1.00,1.00,7,none,true);",
	))
	assert.Equal(t, model.ArcColor(7), c.Groups[0].Events[1].(*model.Arc).Color)
}

func TestArcKeywordsAreStrict(t *testing.T) {
	pe := parseErr(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.00,1.00,Straight,1.00,1.00,0,none,false);",
	))
	assert.Equal(t, "invalid Arc format", pe.Message)
}

func TestCamera(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"camera(500,0.00,10.00,-5.00,0.00,0.00,0.00,qo,0);",
	))
	cam := c.Groups[0].Events[1].(*model.Camera)
	assert := assert.New(t)
	assert.Equal(model.Vec3{X: 0, Y: 10, Z: -5}, cam.Move)
	assert.Equal(model.IdentityQuaternion, cam.Rotate)
	assert.Equal(model.CameraCubicOut, cam.Easing)
	assert.Equal(0, cam.Duration)

	pe := parseErr(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"camera(500,0.00,10.00,0.00,0.00,0.00,0.00,l,-1);",
	))
	assert.Equal(3, pe.Line)
	assert.Equal("Camera: duration cannot be negative", pe.Message)
}

func TestSceneControl(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"scenecontrol(15000,trackdisplay,1.25,255);",
		"scenecontrol(20000,trackhide);",
	))
	assert := assert.New(t)
	display := c.Groups[0].Events[1].(*model.SceneControl)
	assert.Equal(model.SceneTrackDisplay, display.Type)
	assert.Equal(1.25, display.ParamFloat)
	assert.Equal(255, display.ParamInt)

	hide := c.Groups[0].Events[2].(*model.SceneControl)
	assert.Equal(model.SceneTrackHide, hide.Type)
	assert.Equal(0.0, hide.ParamFloat)
	assert.Equal(0, hide.ParamInt)

	pe := parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "scenecontrol(100,unknown);"))
	assert.Equal("invalid SceneControl format", pe.Message)
}

func TestTimingGroups(t *testing.T) {
	c := mustParse(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"timinggroup(noinput_fadingholds){",
		"  timing(0,200.00,4.00);",
		"  (100,1);",
		"};",
		"(200,2);",
		"timinggroup(){",
		"  hold(0,100,0);",
		"};",
	))
	assert := assert.New(t)
	require.Equal(t, 3, c.GroupCount())

	assert.Len(c.Groups[0].Events, 2)
	assert.Equal(200, c.Groups[0].Events[1].Start())

	g1 := c.Groups[1]
	assert.Equal(1, g1.Index)
	assert.Equal([]string{"noinput", "fadingholds"}, g1.Params)
	assert.True(g1.HasParam(model.NoInputParam))
	assert.Len(g1.Events, 2)

	g2 := c.Groups[2]
	assert.Equal([]string{}, g2.Params)
	assert.Len(g2.Events, 1)

	assert.Equal(3, c.NoteCount())
	assert.Equal(2, c.JudgableNoteCount())
}

func TestTimingGroupsDoNotNest(t *testing.T) {
	c, diags, err := parseString(t, lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"timinggroup(){",
		"(100,1);",
		"timinggroup(){",
		"(200,1);",
		"};",
		"(300,1);",
	))
	require.NoError(t, err)
	assert := assert.New(t)
	require.Equal(t, 3, c.GroupCount())
	assert.Len(c.Groups[1].Events, 1)
	assert.Len(c.Groups[2].Events, 1)
	// one end marker returns straight to the default group
	assert.Len(c.Groups[0].Events, 2)
	require.Len(t, diags, 1)
	assert.Equal(5, diags[0].Line)
}

func TestWhitespaceAndUnknownLines(t *testing.T) {
	c, diags, err := parseString(t, lines(
		"AudioOffset:0",
		"",
		"timing(0, 100.00, 4.00);",
		"  ( 1000 , 2 ) ;",
		"",
		"-",
		"flick(100,1);",
	))
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Len(c.Groups[0].Events, 2)
	assert.Equal(2, c.Groups[0].Events[1].(*model.Tap).Track)
	require.Len(t, diags, 1)
	assert.Equal(7, diags[0].Line)
	assert.Contains(diags[0].Message, "flick")
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	c := mustParse(t, lines("AudioOffset:0", "Timing(0,100,4);", "HOLD(100,200,1);"))
	assert.Equal(t, model.KindHold, c.Groups[0].Events[1].Kind())
}

func TestBOMAndCRLF(t *testing.T) {
	src := "\xEF\xBB\xBFAudioOffset:10\r\ntiming(0,100,4);\r\n(100,1);\r\n"
	c := mustParse(t, src)
	assert.Equal(t, 10, c.AudioOffset)
	assert.Len(t, c.Groups[0].Events, 2)
}

func TestSortTypes(t *testing.T) {
	src := lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(1000,1500,0.00,1.00,s,0.00,1.00,0,none,true);",
		"(1000,1);",
		"timing(1000,150,4);",
	)

	byTiming, err := Parse(strings.NewReader(src), model.SortByTiming)
	require.NoError(t, err)
	kinds := func(c *model.Chart) []model.EventKind {
		res := []model.EventKind{}
		for _, e := range c.Groups[0].Events {
			res = append(res, e.Kind())
		}
		return res
	}
	assert.Equal(t, []model.EventKind{model.KindTiming, model.KindArc, model.KindTap, model.KindTiming}, kinds(byTiming))

	byType, err := Parse(strings.NewReader(src), model.SortByType)
	require.NoError(t, err)
	assert.Equal(t, []model.EventKind{model.KindTiming, model.KindTiming, model.KindTap, model.KindArc}, kinds(byType))
}

func TestParseIsDeterministic(t *testing.T) {
	src := lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"(1000,2);",
		"(1000,0.5);",
		"hold(500,900,1);",
		"arc(0,1000,0.00,1.00,b,0.00,1.00,1,none,true)[arctap(100),arctap(900)];",
		"camera(0,0,0,0,90,0,0,s,100);",
	)
	a := mustParse(t, src)
	b := mustParse(t, src)
	assert.Equal(t, a, b)
}

func TestReaderLifecycle(t *testing.T) {
	assert := assert.New(t)
	r := NewReaderBytes([]byte(lines("AudioOffset:0", "timing(0,100,4);")))

	_, err := r.Chart()
	assert.Equal(ErrNotParsed, err)

	require.NoError(t, r.Parse(model.SortByTiming))
	c, err := r.Chart()
	require.NoError(t, err)
	assert.Equal(1, c.GroupCount())

	assert.Equal(ErrAlreadyParsed, r.Parse(model.SortByTiming))
	assert.NoError(r.Close())
	assert.NoError(r.Close())
	assert.Equal(ErrClosed, r.Parse(model.SortByTiming))
}

func TestFailedParseLeavesNoChart(t *testing.T) {
	r := NewReaderBytes([]byte(lines("AudioOffset:0", "(0,1);")))
	assert.Error(t, r.Parse(model.SortByTiming))
	_, err := r.Chart()
	assert.Equal(t, ErrNotParsed, err)
	assert.Equal(t, ErrAlreadyParsed, r.Parse(model.SortByTiming))
}

type trackedStream struct {
	*strings.Reader
	closed bool
}

func (s *trackedStream) Close() error {
	s.closed = true
	return nil
}

func TestCloseLeavesCallerStreamOpen(t *testing.T) {
	s := &trackedStream{Reader: strings.NewReader(lines("AudioOffset:0", "timing(0,100,4);"))}
	r := NewReader(s)
	require.NoError(t, r.Parse(model.SortByTiming))
	require.NoError(t, r.Close())
	assert.False(t, s.closed)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2.aff")
	require.NoError(t, os.WriteFile(path, []byte(lines("AudioOffset:5", "timing(0,100,4);", "(100,3);")), 0o644))

	c, err := ParseFile(path, model.SortByTiming)
	require.NoError(t, err)
	assert.Equal(t, 5, c.AudioOffset)
	assert.Equal(t, 1, c.NoteCount())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.aff"), model.SortByTiming)
	assert.Error(t, err)
}

func TestDiagnosticsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	_, err := Parse(strings.NewReader(lines(
		"AudioOffset:0",
		"timing(0,100,4);",
		"arc(0,1000,0.00,1.00,s,1.00,1.00,0,none,false)[arctap(250)];",
	)), model.SortByTiming, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	assert.Equal(t, "arckit: line 3: solid arc contains arctaps and is treated as a trace arc\n", buf.String())
}

func TestOverflowingLaneIsNotFinite(t *testing.T) {
	pe := parseErr(t, lines("AudioOffset:0", "timing(0,100,4);", "hold(0,100,1.5e400);"))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "Hold: track must be a finite number", pe.Message)
}
