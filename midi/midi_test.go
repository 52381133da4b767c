package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/esc0rtd3w/performous-tools/model"
	"github.com/esc0rtd3w/performous-tools/txt"
)

func chartFrom(t *testing.T, s string) *model.Chart {
	t.Helper()
	chart, err := txt.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return chart
}

type timedNote struct {
	tick int64
	key  uint8
	vel  uint8
}

type timedLyric struct {
	tick int64
	text string
}

type trackInfo struct {
	name     string
	tempo    float64
	hasTempo bool
	notesOn  []timedNote
	notesOff []timedNote
	lyrics   []timedLyric
}

func walkTrack(tr smf.Track) trackInfo {
	var info trackInfo
	var absTicks int64
	for _, event := range tr {
		absTicks += int64(event.Delta)
		var channel uint8
		var key uint8
		var velocity uint8
		var text string
		var bpm float64
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			info.notesOn = append(info.notesOn, timedNote{absTicks, key, velocity})
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			info.notesOff = append(info.notesOff, timedNote{absTicks, key, velocity})
		case event.Message.GetMetaLyric(&text):
			info.lyrics = append(info.lyrics, timedLyric{absTicks, text})
		case event.Message.GetMetaTrackName(&text):
			info.name = text
		case event.Message.GetMetaTempo(&bpm):
			info.tempo = bpm
			info.hasTempo = true
		}
	}
	return info
}

func TestRenderSoloChart(t *testing.T) {
	// 500 ms at 120 BPM is one quarter note, 480 ticks
	chart := chartFrom(t, "#TITLE:Hello\n#BPM:120\n#GAP:500\n: 0 2 4 Hel\n* 2 2 5 lo\n- 4\nF 4 4 ~\nE\n")

	assert := assert.New(t)
	s, err := Render(chart)
	assert.NoError(err)
	assert.Equal(smf.MetricTicks(480), s.TimeFormat)
	assert.Len(s.Tracks, 1)

	info := walkTrack(s.Tracks[0])
	assert.True(info.hasTempo)
	assert.InDelta(120.0, info.tempo, 0.01)
	assert.Equal([]timedLyric{{480, "Hel"}, {720, "lo"}, {960, "~"}}, info.lyrics)
	assert.Equal([]timedNote{{480, 64, 100}, {720, 65, 127}}, info.notesOn)
	assert.Equal([]timedNote{{720, 64, 0}, {960, 65, 0}}, info.notesOff)
}

func TestRenderDuetTracksAndNames(t *testing.T) {
	chart := chartFrom(t, "#TITLE:x\n#BPM:100\n#GAP:0\nP1\n: 0 1 2 a\nP2\n: 4 1 2 b\nE\n")

	assert := assert.New(t)
	s, err := Render(chart)
	assert.NoError(err)
	assert.Len(s.Tracks, 2)

	first := walkTrack(s.Tracks[0])
	assert.Equal("P1", first.name)
	assert.True(first.hasTempo)
	assert.InDelta(100.0, first.tempo, 0.01)

	second := walkTrack(s.Tracks[1])
	assert.Equal("P2", second.name)
	assert.False(second.hasTempo)
	assert.Equal([]timedNote{{480, 62, 100}}, second.notesOn)
}

func TestRenderRequiresBPM(t *testing.T) {
	chart := chartFrom(t, "#TITLE:x\n: 0 1 2 a\nE\n")

	assert := assert.New(t)
	_, err := Render(chart)
	assert.Error(err)
	assert.Contains(err.Error(), "no usable BPM")
}

func TestRenderRejectsBadStartTime(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n: x 1 2 a\nE\n")

	assert := assert.New(t)
	_, err := Render(chart)
	assert.Error(err)
	assert.Contains(err.Error(), "is not a number")
}

func TestRenderClampsKeys(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n#GAP:0\n: 0 1 90 hi\n: 2 1 -70 lo\nE\n")

	assert := assert.New(t)
	s, err := Render(chart)
	assert.NoError(err)

	info := walkTrack(s.Tracks[0])
	assert.Equal([]timedNote{{0, 127, 100}, {240, 0, 100}}, info.notesOn)
}

func TestRenderFloorsEventsAtTrackStart(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n#GAP:-1000\n: 0 1 2 a\nE\n")

	assert := assert.New(t)
	s, err := Render(chart)
	assert.NoError(err)

	info := walkTrack(s.Tracks[0])
	assert.Equal([]timedNote{{0, 62, 100}}, info.notesOn)
	assert.Equal([]timedNote{{0, 62, 0}}, info.notesOff)
}

func TestRenderSkipsEmptyLyrics(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n#GAP:0\n: 0 1 2\nE\n")

	assert := assert.New(t)
	s, err := Render(chart)
	assert.NoError(err)

	info := walkTrack(s.Tracks[0])
	assert.Empty(info.lyrics)
	assert.Len(info.notesOn, 1)
}

func TestRenderPreviewTruncatesEachPerformer(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n#GAP:0\nP1\n: 0 1 2 a\n: 2 1 2 b\n- 4\n: 4 1 2 c\nP2\n: 0 1 4 x\n: 2 1 4 y\nE\n")

	assert := assert.New(t)
	s, err := RenderPreview(chart, 2)
	assert.NoError(err)
	assert.Len(s.Tracks, 2)

	first := walkTrack(s.Tracks[0])
	assert.Equal([]timedLyric{{0, "a"}, {240, "b"}}, first.lyrics)
	assert.Len(first.notesOn, 2)

	second := walkTrack(s.Tracks[1])
	assert.Equal([]timedLyric{{0, "x"}, {240, "y"}}, second.lyrics)
}

func TestRenderPreviewLeavesChartAlone(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n#GAP:0\n: 0 1 2 a\n: 2 1 2 b\nE\n")

	assert := assert.New(t)
	_, err := RenderPreview(chart, 1)
	assert.NoError(err)
	assert.Len(chart.Voices.(*model.Solo).Lines, 2)
}

func TestRenderPreviewNeedsPositiveCount(t *testing.T) {
	chart := chartFrom(t, "#BPM:120\n: 0 1 2 a\nE\n")

	_, err := RenderPreview(chart, 0)
	assert.Error(t, err)
}

func TestWriteFileRoundTrips(t *testing.T) {
	chart := chartFrom(t, "#TITLE:x\n#BPM:120\n#GAP:0\nP1\n: 0 2 4 Hi\nP2\n: 4 2 7 Yo\nE\n")
	path := filepath.Join(t.TempDir(), "x.mid")

	assert := assert.New(t)
	assert.NoError(WriteFile(path, chart))

	dat, err := os.ReadFile(path)
	assert.NoError(err)
	s, err := smf.ReadFrom(bytes.NewReader(dat))
	assert.NoError(err)
	assert.Len(s.Tracks, 2)
	assert.Equal(smf.MetricTicks(480), s.TimeFormat)

	info := walkTrack(s.Tracks[1])
	assert.Equal("P2", info.name)
	assert.Equal([]timedLyric{{480, "Yo"}}, info.lyrics)
}
