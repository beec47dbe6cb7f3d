package model

import (
	"math"

	"github.com/pkg/errors"
)

// Validate reports every structural problem in c. Charts produced by the
// reader only fail here on negative timings, which the format itself allows
// to be written.
func (c *Chart) Validate() []error {
	var errs []error
	if !(c.TimingPointDensityFactor > 0) || math.IsInf(c.TimingPointDensityFactor, 0) {
		errs = append(errs, errors.Errorf("timing point density factor must be positive, got %v", c.TimingPointDensityFactor))
	}
	if len(c.Groups) == 0 || c.Groups[0].Index != 0 {
		errs = append(errs, errors.New("chart has no default timing group"))
		return errs
	}
	if !startsWithZeroTiming(c.Groups[0]) {
		errs = append(errs, errors.New("the first event of the default group must be a timing event at 0"))
	}
	for _, g := range c.Groups {
		for _, e := range g.Events {
			errs = append(errs, validateEvent(g.Index, e)...)
		}
	}
	return errs
}

func startsWithZeroTiming(g *TimingGroup) bool {
	for _, e := range g.Events {
		if t, ok := e.(*Timing); ok && t.Timing == 0 {
			return true
		}
		if e.Start() >= 0 {
			return false
		}
	}
	return false
}

func validateEvent(group int, e Event) []error {
	var errs []error
	if e.Start() < 0 {
		errs = append(errs, errors.Errorf("group %d: %s at %d has a negative timing", group, e.Kind(), e.Start()))
	}
	switch ev := e.(type) {
	case *Tap:
		if !ev.Fractional() && (ev.Track < 0 || ev.Track > 5) {
			errs = append(errs, errors.Errorf("group %d: tap at %d has track %d out of range", group, ev.Timing, ev.Track))
		}
	case *Hold:
		if !ev.Fractional() && (ev.Track < 0 || ev.Track > 5) {
			errs = append(errs, errors.Errorf("group %d: hold at %d has track %d out of range", group, ev.Timing, ev.Track))
		}
	case *Arc:
		if ev.Type == ArcSolid && len(ev.ArcTaps) > 0 {
			errs = append(errs, errors.Errorf("group %d: solid arc at %d carries arctaps", group, ev.Timing))
		}
		if ev.Type == ArcSolid && !ev.Color.Valid() {
			errs = append(errs, errors.Errorf("group %d: solid arc at %d has invalid color %d", group, ev.Timing, int(ev.Color)))
		}
		for _, at := range ev.ArcTaps {
			if at.Timing < 0 {
				errs = append(errs, errors.Errorf("group %d: arctap at %d has a negative timing", group, at.Timing))
			}
		}
	case *Camera:
		if ev.Duration < 0 {
			errs = append(errs, errors.Errorf("group %d: camera at %d has a negative duration", group, ev.Timing))
		}
	}
	return errs
}
