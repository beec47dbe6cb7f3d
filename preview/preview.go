// Package preview renders the hit sounds of a chart as a Standard MIDI File,
// so note placement can be checked by ear against the song.
package preview

import (
	"io"
	"math"
	"sort"

	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TicksPerQuarter = 960
	BPM             = 120

	// general MIDI percussion
	Channel    = 9
	TapNote    = 37 // side stick
	HoldNote   = 38 // snare
	ArcTapNote = 42 // closed hi-hat

	velocity  = 100
	gateTicks = TicksPerQuarter / 16
)

const msPerQuarter = 60000 / BPM

type Hit struct {
	Timing int
	Key    uint8
}

// Hits lists every tap, hold start and arctap outside noinput groups, in
// timing order. Events before 0 are dropped.
func Hits(c *model.Chart) []Hit {
	hits := []Hit{}
	add := func(timing int, key uint8) {
		if timing >= 0 {
			hits = append(hits, Hit{Timing: timing, Key: key})
		}
	}
	for _, g := range c.Groups {
		if g.HasParam(model.NoInputParam) {
			continue
		}
		for _, e := range g.Events {
			switch ev := e.(type) {
			case *model.Tap:
				add(ev.Timing, TapNote)
			case *model.Hold:
				add(ev.Timing, HoldNote)
			case *model.Arc:
				for _, at := range ev.ArcTaps {
					add(at.Timing, ArcTapNote)
				}
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Timing < hits[j].Timing
	})
	return hits
}

func toTicks(ms int) uint32 {
	return uint32(math.Round(float64(ms) * TicksPerQuarter / msPerQuarter))
}

type message struct {
	tick uint32
	off  bool
	data midi.Message
}

// Write encodes the hits of c as a single track SMF at a fixed tempo.
func Write(w io.Writer, c *model.Chart) error {
	var msgs []message
	for _, h := range Hits(c) {
		t := toTicks(h.Timing)
		msgs = append(msgs,
			message{tick: t, data: midi.NoteOn(Channel, h.Key, velocity)},
			message{tick: t + gateTicks, off: true, data: midi.NoteOff(Channel, h.Key)},
		)
	}
	// a note off sorts before a note on at the same tick
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(BPM))
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.data)
		last = m.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "adding preview track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing preview")
	}
	return nil
}
