package model

import "strings"

const NoInputParam = "noinput"

type Chart struct {
	// AudioOffset is in milliseconds.
	AudioOffset int `json:"audio_offset"`
	// TimingPointDensityFactor scales how many judgement points long notes
	// generate. It must be greater than 0; 1 is normal density.
	TimingPointDensityFactor float64 `json:"timing_point_density_factor"`
	// Groups always holds the default group at index 0.
	Groups []*TimingGroup `json:"groups"`
}

func NewChart() *Chart {
	return &Chart{
		TimingPointDensityFactor: 1,
		Groups:                   []*TimingGroup{{Index: 0}},
	}
}

// AddGroup appends a group indexed after the existing ones.
func (c *Chart) AddGroup(params []string) *TimingGroup {
	g := &TimingGroup{Index: len(c.Groups), Params: params}
	c.Groups = append(c.Groups, g)
	return g
}

func (c *Chart) GroupCount() int { return len(c.Groups) }

func (c *Chart) Sort(st SortType) {
	for _, g := range c.Groups {
		g.Sort(st)
	}
}

// NoteCount counts taps, holds and arcs over all groups; a long note counts once.
func (c *Chart) NoteCount() int {
	n := 0
	for _, g := range c.Groups {
		n += g.NoteCount()
	}
	return n
}

func (c *Chart) ArcTapCount() int {
	n := 0
	for _, g := range c.Groups {
		for _, e := range g.Events {
			if arc, ok := e.(*Arc); ok {
				n += len(arc.ArcTaps)
			}
		}
	}
	return n
}

// JudgableNoteCount is NoteCount without groups marked noinput.
func (c *Chart) JudgableNoteCount() int {
	n := 0
	for _, g := range c.Groups {
		if !g.HasParam(NoInputParam) {
			n += g.NoteCount()
		}
	}
	return n
}

// Duration returns the latest timing covered by any event, in milliseconds.
func (c *Chart) Duration() int {
	end := 0
	for _, g := range c.Groups {
		for _, e := range g.Events {
			if t := End(e); t > end {
				end = t
			}
		}
	}
	return end
}

type TimingGroup struct {
	Index  int
	Params []string
	Events []Event
}

func (g *TimingGroup) Add(e Event) {
	g.Events = append(g.Events, e)
}

func (g *TimingGroup) Sort(st SortType) {
	SortEvents(g.Events, st)
}

func (g *TimingGroup) HasParam(name string) bool {
	for _, p := range g.Params {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func (g *TimingGroup) NoteCount() int {
	n := 0
	for _, e := range g.Events {
		if info, ok := EventInfo(e.Kind()); ok && info.Category == CategoryNote {
			n++
		}
	}
	return n
}
