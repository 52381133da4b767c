package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Note line tags.
const (
	TagNote      = ':'
	TagGolden    = '*'
	TagFreestyle = 'F'
	TagBreak     = '-'
)

// IsNoteTag reports whether c opens a note line.
func IsNoteTag(c byte) bool {
	switch c {
	case TagNote, TagGolden, TagFreestyle, TagBreak:
		return true
	}
	return false
}

// Line is one note line, kept as its raw token split: at most 5 tokens, tag
// first, any extra spaces folded into the final (lyric) token. Storing tokens
// instead of decoded fields keeps unknown shapes intact across a
// parse/serialize round trip.
type Line struct {
	Tokens []string
}

func (l Line) Tag() byte {
	if len(l.Tokens) == 0 || l.Tokens[0] == "" {
		return 0
	}
	return l.Tokens[0][0]
}

// StartTime returns the start-time token (token 1) as an integer.
func (l Line) StartTime() (int, error) {
	if len(l.Tokens) < 2 {
		return 0, errors.Errorf("note line %q has no start time", l.String())
	}
	n, err := strconv.Atoi(l.Tokens[1])
	if err != nil {
		return 0, errors.Errorf("note line %q: start time %q is not a number", l.String(), l.Tokens[1])
	}
	return n, nil
}

// SetStartTime rewrites the start-time token in place. Callers must have read
// StartTime successfully first.
func (l Line) SetStartTime(n int) {
	l.Tokens[1] = strconv.Itoa(n)
}

// Duration returns the length token (token 2) as an integer.
func (l Line) Duration() (int, error) {
	if len(l.Tokens) < 3 {
		return 0, errors.Errorf("note line %q has no duration", l.String())
	}
	n, err := strconv.Atoi(l.Tokens[2])
	if err != nil {
		return 0, errors.Errorf("note line %q: duration %q is not a number", l.String(), l.Tokens[2])
	}
	return n, nil
}

// Pitch returns the pitch token (token 3) as an integer, relative to middle C.
func (l Line) Pitch() (int, error) {
	if len(l.Tokens) < 4 {
		return 0, errors.Errorf("note line %q has no pitch", l.String())
	}
	n, err := strconv.Atoi(l.Tokens[3])
	if err != nil {
		return 0, errors.Errorf("note line %q: pitch %q is not a number", l.String(), l.Tokens[3])
	}
	return n, nil
}

// Lyric returns the lyric token, or "" when the line has none. Freestyle
// lines in the wild often omit the pitch; on a four-token line a fourth
// token that is not a number is the lyric, not a pitch.
func (l Line) Lyric() string {
	switch len(l.Tokens) {
	case 5:
		return l.Tokens[4]
	case 4:
		if _, err := strconv.Atoi(l.Tokens[3]); err != nil {
			return l.Tokens[3]
		}
	}
	return ""
}

func (l Line) String() string {
	return strings.Join(l.Tokens, " ")
}
