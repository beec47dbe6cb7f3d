package chart

import (
	"strings"

	"github.com/jsphweid/arckit/curve"
	"github.com/jsphweid/arckit/model"
	"github.com/jsphweid/arckit/token"
	"github.com/jsphweid/arckit/util"
)

// Statement keywords, lower case. Matching is case-insensitive.
const (
	kwTiming       = "timing("
	kwTap          = "("
	kwHold         = "hold("
	kwArc          = "arc("
	kwCamera       = "camera("
	kwSceneControl = "scenecontrol("
	kwTimingGroup  = "timinggroup("
	kwGroupEnd     = "};"

	// covers "[arctap(" and ",arctap("
	arcTapLeadIn = 8
)

func hasKeyword(line, kw string) bool {
	return len(line) >= len(kw) && strings.EqualFold(line[:len(kw)], kw)
}

// cursorAfter starts a cursor past the statement keyword, counted in runes.
func cursorAfter(line, kw string) token.Cursor {
	c := token.New(line)
	c.Skip(len([]rune(kw)))
	return c
}

// timing(0,120.00,4.00);
func (p *parser) decodeTiming(line string) (*model.Timing, error) {
	ev, err := p.readTiming(line)
	return ev, asParseError(err, p.line, "Timing")
}

func (p *parser) readTiming(line string) (*model.Timing, error) {
	c := cursorAfter(line, kwTiming)
	timing, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	bpm, err := c.ReadFloat()
	if err != nil {
		return nil, err
	}
	beatsPerLine, err := c.ReadFloat()
	if err != nil {
		return nil, err
	}
	switch {
	case beatsPerLine == 0 && bpm == 0:
		beatsPerLine = 4
	case beatsPerLine == 0:
		return nil, newParseError(p.line, "Timing: BeatsPerLine cannot be zero when BPM is not zero")
	case beatsPerLine < 0:
		bpm, beatsPerLine = -bpm, -beatsPerLine
	}
	return &model.Timing{Base: model.Base{Timing: timing}, BPM: bpm, BeatsPerLine: beatsPerLine}, nil
}

// readLane reads an integer track 0-5, falling back to a finite fractional
// track.
func (p *parser) readLane(c *token.Cursor, what string) (model.Lane, error) {
	if track, ok := c.TryReadInt(); ok {
		if track < 0 || track > 5 {
			return model.Lane{}, newParseError(p.line, "%s: track index out of range (must be between 0 and 5)", what)
		}
		return model.Lane{Track: track}, nil
	}
	trackF, err := c.ReadFloat()
	if err != nil {
		return model.Lane{}, err
	}
	if !util.IsFinite(trackF) {
		return model.Lane{}, newParseError(p.line, "%s: track must be a finite number", what)
	}
	return model.Lane{TrackF: &trackF}, nil
}

// (1500,2); or (1500,0.75);
func (p *parser) decodeTap(line string) (*model.Tap, error) {
	ev, err := p.readTap(line)
	return ev, asParseError(err, p.line, "Tap")
}

func (p *parser) readTap(line string) (*model.Tap, error) {
	c := cursorAfter(line, kwTap)
	timing, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	lane, err := p.readLane(&c, "Tap")
	if err != nil {
		return nil, err
	}
	return &model.Tap{Base: model.Base{Timing: timing}, Lane: lane}, nil
}

// hold(1500,2000,3);
func (p *parser) decodeHold(line string) (*model.Hold, error) {
	ev, err := p.readHold(line)
	return ev, asParseError(err, p.line, "Hold")
}

func (p *parser) readHold(line string) (*model.Hold, error) {
	c := cursorAfter(line, kwHold)
	timing, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	endTiming, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	lane, err := p.readLane(&c, "Hold")
	if err != nil {
		return nil, err
	}
	return &model.Hold{Base: model.Base{Timing: timing}, EndTiming: endTiming, Lane: lane}, nil
}

// arc(0,1000,0.00,1.00,s,0.00,1.00,0,none,true)[arctap(500),arctap(750)];
func (p *parser) decodeArc(line string) (*model.Arc, error) {
	ev, err := p.readArc(line)
	return ev, asParseError(err, p.line, "Arc")
}

func (p *parser) readArc(line string) (*model.Arc, error) {
	c := cursorAfter(line, kwArc)
	arc := &model.Arc{Smoothness: 1}
	var err error
	if arc.Timing, err = c.ReadInt(); err != nil {
		return nil, err
	}
	if arc.EndTiming, err = c.ReadInt(); err != nil {
		return nil, err
	}
	if arc.StartPos.X, err = c.ReadFloat(); err != nil {
		return nil, err
	}
	if arc.EndPos.X, err = c.ReadFloat(); err != nil {
		return nil, err
	}
	kw, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	if arc.Curve, err = model.ParseCurveType(kw, true); err != nil {
		return nil, err
	}
	if arc.StartPos.Y, err = c.ReadFloat(); err != nil {
		return nil, err
	}
	if arc.EndPos.Y, err = c.ReadFloat(); err != nil {
		return nil, err
	}
	color, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	arc.Color = model.ArcColor(color)
	sfx, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	arc.Sfx = sfx
	if strings.TrimSpace(sfx) == "" {
		arc.Sfx = "none"
	}
	kw, hasSmoothness, err := c.ReadStringMore()
	if err != nil {
		return nil, err
	}
	if arc.Type, err = model.ParseArcType(kw, true); err != nil {
		return nil, err
	}
	if hasSmoothness {
		if arc.Smoothness, err = c.ReadFloat(); err != nil {
			return nil, err
		}
	}

	arc.ArcTaps = []model.ArcTap{}
	if c.Current() != ';' {
		for {
			c.Skip(arcTapLeadIn)
			timing, err := c.ReadInt()
			if err != nil {
				return nil, err
			}
			arc.ArcTaps = append(arc.ArcTaps, model.ArcTap{
				Base:     model.Base{Timing: timing},
				Position: curve.ArcTapPosition(arc, timing),
			})
			if c.Current() != ',' {
				break
			}
		}
	}

	if len(arc.ArcTaps) > 0 && arc.Type == model.ArcSolid {
		p.diagnosef("solid arc contains arctaps and is treated as a trace arc")
		arc.Type = model.ArcTraceVoid
	}
	if !arc.Type.IsTrace() && !arc.Color.Valid() {
		return nil, newParseError(p.line, "Arc: invalid color for a solid arc, accepted colors are Blue(0), Red(1), Green(2), Gray(3) or the arc must be a trace arc")
	}
	return arc, nil
}

// camera(0,0.00,10.00,0.00,0.00,0.00,0.00,l,500);
func (p *parser) decodeCamera(line string) (*model.Camera, error) {
	ev, err := p.readCamera(line)
	return ev, asParseError(err, p.line, "Camera")
}

func (p *parser) readCamera(line string) (*model.Camera, error) {
	c := cursorAfter(line, kwCamera)
	timing, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	var v [6]float64
	for i := range v {
		if v[i], err = c.ReadFloat(); err != nil {
			return nil, err
		}
	}
	kw, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	easing, err := model.ParseCameraEasing(kw, true)
	if err != nil {
		return nil, err
	}
	duration, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	if duration < 0 {
		return nil, newParseError(p.line, "Camera: duration cannot be negative")
	}
	return &model.Camera{
		Base:     model.Base{Timing: timing},
		Move:     model.Vec3{X: v[0], Y: v[1], Z: v[2]},
		Rotate:   model.QuaternionFromEuler(v[3], v[4], v[5]),
		Easing:   easing,
		Duration: duration,
	}, nil
}

// scenecontrol(15000,trackdisplay,1.25,255); or scenecontrol(20000,trackhide);
func (p *parser) decodeSceneControl(line string) (*model.SceneControl, error) {
	ev, err := p.readSceneControl(line)
	return ev, asParseError(err, p.line, "SceneControl")
}

func (p *parser) readSceneControl(line string) (*model.SceneControl, error) {
	c := cursorAfter(line, kwSceneControl)
	timing, err := c.ReadInt()
	if err != nil {
		return nil, err
	}
	kw, hasArgs, err := c.ReadStringMore()
	if err != nil {
		return nil, err
	}
	typ, err := model.ParseSceneControlType(kw, true)
	if err != nil {
		return nil, err
	}
	ev := &model.SceneControl{Base: model.Base{Timing: timing}, Type: typ}
	if hasArgs {
		if ev.ParamFloat, err = c.ReadFloat(); err != nil {
			return nil, err
		}
		if ev.ParamInt, err = c.ReadInt(); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

// timinggroup(noinput_fadingholds){
func (p *parser) decodeTimingGroup(line string) ([]string, error) {
	c := cursorAfter(line, kwTimingGroup)
	arg, err := c.ReadString()
	if err != nil {
		return nil, asParseError(err, p.line, "TimingGroup")
	}
	params := []string{}
	for _, s := range strings.Split(arg, "_") {
		if s != "" {
			params = append(params, s)
		}
	}
	return params, nil
}
