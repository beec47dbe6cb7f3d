package model

import (
	"fmt"
)

// CurveType is the interpolation applied along an arc.
type CurveType int

const (
	CurveStraight CurveType = iota
	CurveBezier
	CurveSi
	CurveSo
	CurveSiSi
	CurveSiSo
	CurveSoSi
	CurveSoSo
)

var curveTypes = newKeywordTable("curve type",
	keywordEntry[CurveType]{CurveStraight, "s", "Straight"},
	keywordEntry[CurveType]{CurveBezier, "b", "Bezier"},
	keywordEntry[CurveType]{CurveSi, "si", "Si"},
	keywordEntry[CurveType]{CurveSo, "so", "So"},
	keywordEntry[CurveType]{CurveSiSi, "sisi", "SiSi"},
	keywordEntry[CurveType]{CurveSiSo, "siso", "SiSo"},
	keywordEntry[CurveType]{CurveSoSi, "sosi", "SoSi"},
	keywordEntry[CurveType]{CurveSoSo, "soso", "SoSo"},
)

func ParseCurveType(s string, strict bool) (CurveType, error) { return curveTypes.parse(s, strict) }

func (c CurveType) Keyword() string { return curveTypes.keyword(c) }

func (c CurveType) String() string {
	return curveTypes.name(c, fmt.Sprintf("CurveType(%d)", int(c)))
}

// ArcType separates judged arcs from trace arcs.
type ArcType int

const (
	// Solid arcs are judged and carry no arctaps.
	ArcSolid ArcType = iota
	ArcTraceVoid
	// ArcTraceDesignant arctaps are drawn red and excluded from combo and score.
	ArcTraceDesignant
)

var arcTypes = newKeywordTable("arc type",
	keywordEntry[ArcType]{ArcSolid, "false", "Solid"},
	keywordEntry[ArcType]{ArcTraceVoid, "true", "TraceVoid"},
	keywordEntry[ArcType]{ArcTraceDesignant, "designant", "TraceDesignant"},
)

func ParseArcType(s string, strict bool) (ArcType, error) { return arcTypes.parse(s, strict) }

func (a ArcType) Keyword() string { return arcTypes.keyword(a) }

func (a ArcType) String() string {
	return arcTypes.name(a, fmt.Sprintf("ArcType(%d)", int(a)))
}

func (a ArcType) IsTrace() bool { return a >= ArcTraceVoid }

// ArcColor is stored as the raw integer code from the chart; only the first
// four codes are valid for solid arcs.
type ArcColor int

const (
	ColorBlue ArcColor = iota
	ColorRed
	// ColorGreen renders as red unless the game allows memes.
	ColorGreen
	ColorGray
)

func (c ArcColor) Valid() bool { return c >= ColorBlue && c <= ColorGray }

func (c ArcColor) String() string {
	switch c {
	case ColorBlue:
		return "Blue"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorGray:
		return "Gray"
	}
	return fmt.Sprintf("ArcColor(%d)", int(c))
}

// CameraEasing is the easing of a camera movement. Reset drops all previous
// transformations.
type CameraEasing int

const (
	CameraReset CameraEasing = iota - 1
	CameraLinear
	CameraSineInOut
	CameraCubicIn
	CameraCubicOut
)

var cameraEasings = newKeywordTable("camera easing",
	keywordEntry[CameraEasing]{CameraReset, "reset", "Reset"},
	keywordEntry[CameraEasing]{CameraLinear, "l", "Linear"},
	keywordEntry[CameraEasing]{CameraSineInOut, "s", "SineInOut"},
	keywordEntry[CameraEasing]{CameraCubicIn, "qi", "CubicIn"},
	keywordEntry[CameraEasing]{CameraCubicOut, "qo", "CubicOut"},
)

func ParseCameraEasing(s string, strict bool) (CameraEasing, error) {
	return cameraEasings.parse(s, strict)
}

func (c CameraEasing) Keyword() string { return cameraEasings.keyword(c) }

func (c CameraEasing) String() string {
	return cameraEasings.name(c, fmt.Sprintf("CameraEasing(%d)", int(c)))
}

// SceneControlType codes are sparse; unknown codes may appear in
// hand-built charts but the reader only accepts the named ones.
type SceneControlType int

const (
	// trackdisplay: param float is transition seconds, param int the alpha 0-255.
	SceneTrackDisplay SceneControlType = 0
	SceneTrackHide    SceneControlType = 1
	SceneTrackShow    SceneControlType = 2
	// hidegroup: param int 1 hides the group, 0 shows it.
	SceneHideGroup SceneControlType = 10
	// enwidencamera and enwidenlanes take their duration in milliseconds.
	SceneEnwidenCamera SceneControlType = 20
	SceneEnwidenLanes  SceneControlType = 21
	SceneArcahvDistort SceneControlType = 30
	SceneArcahvDebris  SceneControlType = 31
	SceneRedLine       SceneControlType = 32
)

var sceneControlTypes = newKeywordTable("scene control type",
	keywordEntry[SceneControlType]{SceneTrackDisplay, "trackdisplay", "TrackDisplay"},
	keywordEntry[SceneControlType]{SceneTrackHide, "trackhide", "TrackHide"},
	keywordEntry[SceneControlType]{SceneTrackShow, "trackshow", "TrackShow"},
	keywordEntry[SceneControlType]{SceneHideGroup, "hidegroup", "HideGroup"},
	keywordEntry[SceneControlType]{SceneEnwidenCamera, "enwidencamera", "EnwidenCamera"},
	keywordEntry[SceneControlType]{SceneEnwidenLanes, "enwidenlanes", "EnwidenLanes"},
	keywordEntry[SceneControlType]{SceneArcahvDistort, "arcahvdistort", "ArcahvDistort"},
	keywordEntry[SceneControlType]{SceneArcahvDebris, "arcahvdebris", "ArcahvDebris"},
	keywordEntry[SceneControlType]{SceneRedLine, "redline", "RedLine"},
)

func ParseSceneControlType(s string, strict bool) (SceneControlType, error) {
	return sceneControlTypes.parse(s, strict)
}

func (s SceneControlType) Keyword() string { return sceneControlTypes.keyword(s) }

func (s SceneControlType) String() string {
	return sceneControlTypes.name(s, fmt.Sprintf("SceneControlType(%d)", int(s)))
}

// SceneControlKeywords lists the accepted scene control spellings.
func SceneControlKeywords() []string { return sceneControlTypes.keywords() }

// SortType selects the ordering applied to each group's events.
type SortType int

const (
	SortByTiming SortType = iota
	// SortByType breaks timing ties by event type rank before the per-type keys.
	SortByType
)

var sortTypes = newKeywordTable("sort type",
	keywordEntry[SortType]{SortByTiming, "timing", "ByTiming"},
	keywordEntry[SortType]{SortByType, "type", "ByType"},
)

func ParseSortType(s string) (SortType, error) { return sortTypes.parse(s, false) }

func (s SortType) Keyword() string { return sortTypes.keyword(s) }

func (s SortType) String() string {
	return sortTypes.name(s, fmt.Sprintf("SortType(%d)", int(s)))
}
