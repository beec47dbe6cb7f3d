// Package curve places points along arcs. All functions take progress t in
// [0, 1] and are pure.
package curve

import (
	"math"

	"github.com/jsphweid/arckit/model"
	"github.com/jsphweid/arckit/util"
)

func Straight(start, end, t float64) float64 {
	return (1-t)*start + end*t
}

// Bezier blends the two endpoints with cubic weights. It is not the textbook
// cubic Bezier: the start weight is o³+3o²t and the end weight 3ot²+t³.
func Bezier(start, end, t float64) float64 {
	o := 1 - t
	return o*o*o*start + 3*o*o*t*start + 3*o*t*t*end + t*t*t*end
}

// SineIn eases out along the sine; the game names it sine in.
func SineIn(start, end, t float64) float64 {
	return util.Lerp(start, end, math.Sin(math.Pi/2*t))
}

func SineOut(start, end, t float64) float64 {
	return util.Lerp(start, end, 1-math.Cos(math.Pi/2*t))
}

func X(start, end, t float64, c model.CurveType) float64 {
	switch c {
	case model.CurveBezier:
		return Bezier(start, end, t)
	case model.CurveSi, model.CurveSiSi, model.CurveSiSo:
		return SineIn(start, end, t)
	case model.CurveSo, model.CurveSoSi, model.CurveSoSo:
		return SineOut(start, end, t)
	}
	return Straight(start, end, t)
}

func Y(start, end, t float64, c model.CurveType) float64 {
	switch c {
	case model.CurveBezier:
		return Bezier(start, end, t)
	case model.CurveSiSi, model.CurveSoSi:
		return SineIn(start, end, t)
	case model.CurveSiSo, model.CurveSoSo:
		return SineOut(start, end, t)
	}
	return Straight(start, end, t)
}

func Point(start, end model.Vec2, t float64, c model.CurveType) model.Vec2 {
	return model.Vec2{
		X: X(start.X, end.X, t, c),
		Y: Y(start.Y, end.Y, t, c),
	}
}

// Progress is how far timing sits through [from, to], clamped; a zero-length
// span gives 0.
func Progress(from, to, timing int) float64 {
	if from == to {
		return 0
	}
	return util.InverseLerpClamped(float64(from), float64(to), float64(timing))
}

// ArcTapPosition places an arctap at timing on arc.
func ArcTapPosition(arc *model.Arc, timing int) model.Vec2 {
	r := Progress(arc.Timing, arc.EndTiming, timing)
	return Point(arc.StartPos, arc.EndPos, r, arc.Curve)
}
