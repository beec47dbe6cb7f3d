package model

import "fmt"

type EventKind int

const (
	KindTiming EventKind = iota + 1
	KindTap
	KindHold
	KindArc
	KindArcTap
	KindCamera
	KindSceneControl
	KindTimingGroup
)

func (k EventKind) String() string {
	switch k {
	case KindTiming:
		return "timing"
	case KindTap:
		return "tap"
	case KindHold:
		return "hold"
	case KindArc:
		return "arc"
	case KindArcTap:
		return "arctap"
	case KindCamera:
		return "camera"
	case KindSceneControl:
		return "scenecontrol"
	case KindTimingGroup:
		return "timinggroup"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

type Category int

const (
	CategoryTiming Category = iota
	CategoryNote
	CategoryCamera
	CategorySceneControl
	CategoryTimingGroup
)

type Info struct {
	Category Category
	// Nestable reports whether the statement may appear inside a custom
	// timing group. The default group accepts everything.
	Nestable bool
}

var eventInfo = map[EventKind]Info{
	KindTiming:       {Category: CategoryTiming, Nestable: true},
	KindTap:          {Category: CategoryNote, Nestable: true},
	KindHold:         {Category: CategoryNote, Nestable: true},
	KindArc:          {Category: CategoryNote, Nestable: true},
	KindArcTap:       {Category: CategoryNote, Nestable: true},
	KindCamera:       {Category: CategoryCamera, Nestable: true},
	KindSceneControl: {Category: CategorySceneControl, Nestable: true},
	KindTimingGroup:  {Category: CategoryTimingGroup, Nestable: false},
}

func EventInfo(k EventKind) (Info, bool) {
	info, ok := eventInfo[k]
	return info, ok
}

// Event is one of *Timing, *Tap, *Hold, *Arc, *Camera or *SceneControl.
type Event interface {
	Kind() EventKind
	// Start is the event timing in milliseconds.
	Start() int
}

type Base struct {
	Timing int `json:"timing"`
}

func (b Base) Start() int { return b.Timing }

type Timing struct {
	Base
	BPM          float64 `json:"bpm"`
	BeatsPerLine float64 `json:"beats_per_line"`
}

func (*Timing) Kind() EventKind { return KindTiming }

// Lane is either an integer track 0-5 or, when TrackF is set, a fractional
// position.
type Lane struct {
	Track  int      `json:"track"`
	TrackF *float64 `json:"track_f,omitempty"`
}

func (l Lane) Fractional() bool { return l.TrackF != nil }

func (l Lane) Value() float64 {
	if l.TrackF != nil {
		return *l.TrackF
	}
	return float64(l.Track)
}

type Tap struct {
	Base
	Lane
}

func (*Tap) Kind() EventKind { return KindTap }

type Hold struct {
	Base
	EndTiming int `json:"end_timing"`
	Lane
}

func (*Hold) Kind() EventKind { return KindHold }

type Arc struct {
	Base
	EndTiming  int       `json:"end_timing"`
	StartPos   Vec2      `json:"start"`
	EndPos     Vec2      `json:"end"`
	Curve      CurveType `json:"curve"`
	Color      ArcColor  `json:"color"`
	Type       ArcType   `json:"arc_type"`
	Smoothness float64   `json:"smoothness"`
	// Sfx names the sound played when the arctaps are hit, "none" for the
	// default.
	Sfx     string   `json:"sfx"`
	ArcTaps []ArcTap `json:"arctaps"`
}

func (*Arc) Kind() EventKind { return KindArc }

// ArcTap sits on its parent arc; Position is derived from the arc curve.
type ArcTap struct {
	Base
	Position Vec2 `json:"position"`
}

func (*ArcTap) Kind() EventKind { return KindArcTap }

type Camera struct {
	Base
	Move     Vec3         `json:"move"`
	Rotate   Quaternion   `json:"rotate"`
	Easing   CameraEasing `json:"easing"`
	Duration int          `json:"duration"`
}

func (*Camera) Kind() EventKind { return KindCamera }

type SceneControl struct {
	Base
	Type       SceneControlType `json:"scene_type"`
	ParamFloat float64          `json:"param_float"`
	ParamInt   int              `json:"param_int"`
}

func (*SceneControl) Kind() EventKind { return KindSceneControl }

// End returns the latest timing the event covers.
func End(e Event) int {
	switch ev := e.(type) {
	case *Hold:
		return ev.EndTiming
	case *Arc:
		return ev.EndTiming
	case *Camera:
		return ev.Timing + ev.Duration
	}
	return e.Start()
}
