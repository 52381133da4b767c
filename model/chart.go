package model

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/util"
)

// Voices is a chart's timing-mode variant: a chart carries either one unnamed
// performer (Solo) or a map of numbered performers (Duet), never both. Solo
// and Duet are the only implementations; a mixed file is rejected by the
// parser, so the invalid state has no representation here.
type Voices interface {
	// NumPerformers reports how many performers carry lines.
	NumPerformers() int
	isVoices()
}

// Solo is the single-player timeline.
type Solo struct {
	Lines []Line
}

func (*Solo) isVoices() {}

func (s *Solo) NumPerformers() int { return 1 }

// Duet maps performer id to that singer's lines. Ids are positive but not
// necessarily contiguous, whatever the source file used.
type Duet struct {
	Players map[int][]Line
}

func (*Duet) isVoices() {}

func (d *Duet) NumPerformers() int { return len(d.Players) }

// IDs returns the performer ids in ascending order.
func (d *Duet) IDs() []int {
	return util.SortedKeys(d.Players)
}

// MaxID returns the highest performer id, 0 when empty.
func (d *Duet) MaxID() int {
	max := 0
	for id := range d.Players {
		if id > max {
			max = id
		}
	}
	return max
}

// Chart is one parsed song file: its headers plus its timing-mode variant.
type Chart struct {
	Headers *Headers
	Voices  Voices
}

// NewChart returns an empty single-player chart.
func NewChart() *Chart {
	return &Chart{Headers: NewHeaders(), Voices: &Solo{}}
}

// Promote converts a single-player chart into a multiplayer one, moving the
// unnamed performer's lines to id 1. Promoting an already-multiplayer chart
// is an error, so calling it twice fails.
func (c *Chart) Promote() error {
	solo, ok := c.Voices.(*Solo)
	if !ok {
		return errors.New("chart is already multiplayer")
	}
	c.Voices = &Duet{Players: map[int][]Line{1: solo.Lines}}
	return nil
}

// Timelines returns every performer's lines: the solo timeline, or the
// numbered ones in ascending id order. The inner slices share backing arrays
// with the chart, so token edits through them edit the chart.
func (c *Chart) Timelines() [][]Line {
	switch v := c.Voices.(type) {
	case *Solo:
		return [][]Line{v.Lines}
	case *Duet:
		out := make([][]Line, 0, len(v.Players))
		for _, id := range v.IDs() {
			out = append(out, v.Players[id])
		}
		return out
	}
	return nil
}

// Title returns the TITLE header, or "" when absent.
func (c *Chart) Title() string {
	t, _ := c.Headers.Get(HeaderTitle)
	return t
}

// Relative reports whether the chart uses relative timing: RELATIVE present
// with any value other than NO. Relative charts encode start times as deltas
// between lines, so uniform shifting is meaningless for them.
func (c *Chart) Relative() bool {
	v, ok := c.Headers.Get(HeaderRelative)
	return ok && !strings.EqualFold(strings.TrimSpace(v), "NO")
}
