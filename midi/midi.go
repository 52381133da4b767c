// Package midi exports charts as Standard MIDI Files, one track per
// performer, so merged duets can be checked in a piano-roll editor.
package midi

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/esc0rtd3w/performous-tools/model"
)

const (
	ticksPerQuarter = 480
	// one chart unit is a quarter beat
	ticksPerUnit = ticksPerQuarter / 4
)

type event struct {
	tick int
	msg  smf.Message
}

// Render builds an SMF from chart: a tempo event from the BPM header on the
// first track, then per performer a track of lyric and note events. GAP moves
// every event right by the equivalent number of ticks.
func Render(chart *model.Chart) (*smf.SMF, error) {
	bpm, err := chart.Headers.Float(model.HeaderBPM, 0)
	if err != nil {
		return nil, err
	}
	if bpm <= 0 {
		return nil, errors.Errorf("chart %q has no usable BPM header", chart.Title())
	}
	gap, err := chart.Headers.Float(model.HeaderGap, 0)
	if err != nil {
		return nil, err
	}
	gapTicks := int(math.Round(gap / 60000 * bpm * ticksPerQuarter))

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	switch v := chart.Voices.(type) {
	case *model.Solo:
		tr, err := performerTrack("", bpm, gapTicks, v.Lines, true)
		if err != nil {
			return nil, err
		}
		s.Add(tr)
	case *model.Duet:
		for i, id := range v.IDs() {
			tr, err := performerTrack(fmt.Sprintf("P%d", id), bpm, gapTicks, v.Players[id], i == 0)
			if err != nil {
				return nil, err
			}
			s.Add(tr)
		}
	}
	return s, nil
}

// RenderPreview is Render cut short: only the first maxNotes sung lines of
// each performer make it into the file, enough to check sync against the
// audio without scrubbing through the whole song.
func RenderPreview(chart *model.Chart, maxNotes int) (*smf.SMF, error) {
	if maxNotes < 1 {
		return nil, errors.Errorf("preview needs at least 1 note, got %d", maxNotes)
	}
	preview := &model.Chart{Headers: chart.Headers}
	switch v := chart.Voices.(type) {
	case *model.Solo:
		preview.Voices = &model.Solo{Lines: firstNotes(v.Lines, maxNotes)}
	case *model.Duet:
		players := make(map[int][]model.Line, len(v.Players))
		for id, lines := range v.Players {
			players[id] = firstNotes(lines, maxNotes)
		}
		preview.Voices = &model.Duet{Players: players}
	}
	return Render(preview)
}

// WriteFile renders chart and writes the .mid to path.
func WriteFile(path string, chart *model.Chart) error {
	s, err := Render(chart)
	if err != nil {
		return err
	}
	return writeSMF(path, s)
}

// WritePreviewFile is WriteFile for a maxNotes preview.
func WritePreviewFile(path string, chart *model.Chart, maxNotes int) error {
	s, err := RenderPreview(chart, maxNotes)
	if err != nil {
		return err
	}
	return writeSMF(path, s)
}

func writeSMF(path string, s *smf.SMF) error {
	if err := s.WriteFile(path); err != nil {
		return errors.Wrapf(err, "writing midi %v", path)
	}
	return nil
}

// firstNotes truncates lines after the n-th sung note, keeping break lines
// in between.
func firstNotes(lines []model.Line, n int) []model.Line {
	var out []model.Line
	notes := 0
	for _, line := range lines {
		if line.Tag() != model.TagBreak {
			if notes >= n {
				break
			}
			notes++
		}
		out = append(out, line)
	}
	return out
}

func performerTrack(name string, bpm float64, gapTicks int, lines []model.Line, tempo bool) (smf.Track, error) {
	events, err := lineEvents(gapTicks, lines)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var tr smf.Track
	if tempo {
		tr = append(tr, smf.Event{Message: smf.Message(smf.MetaTempo(bpm))})
	}
	if name != "" {
		tr = append(tr, smf.Event{Message: smf.Message(smf.MetaTrackSequenceName(name))})
	}
	prev := 0
	for _, e := range events {
		tr = append(tr, smf.Event{Delta: uint32(e.tick - prev), Message: e.msg})
		prev = e.tick
	}
	tr.Close(0)
	return tr, nil
}

func lineEvents(gapTicks int, lines []model.Line) ([]event, error) {
	var events []event
	for _, line := range lines {
		tag := line.Tag()
		if tag != model.TagNote && tag != model.TagGolden && tag != model.TagFreestyle {
			continue
		}
		start, err := line.StartTime()
		if err != nil {
			return nil, err
		}
		on := tickAt(gapTicks, start)
		if lyric := line.Lyric(); lyric != "" {
			events = append(events, event{on, smf.Message(smf.MetaLyric(lyric))})
		}
		if tag == model.TagFreestyle {
			continue
		}
		duration, err := line.Duration()
		if err != nil {
			return nil, err
		}
		pitch, err := line.Pitch()
		if err != nil {
			return nil, err
		}
		key := clampKey(60 + pitch)
		vel := uint8(100)
		if tag == model.TagGolden {
			vel = 127
		}
		events = append(events,
			event{on, smf.Message(midi.NoteOn(0, key, vel))},
			event{tickAt(gapTicks, start+duration), smf.Message(midi.NoteOff(0, key))})
	}
	return events, nil
}

// tickAt floors at zero: SMF cannot represent events before the track start,
// which a negative GAP would otherwise produce.
func tickAt(gapTicks, units int) int {
	t := gapTicks + units*ticksPerUnit
	if t < 0 {
		return 0
	}
	return t
}

func clampKey(key int) uint8 {
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}
