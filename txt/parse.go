package txt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/model"
)

// ParseError reports a line that violates the chart grammar. Line is 1-based;
// whole-stream violations (missing terminator, mixed mode) carry the number
// of the last line read and no text.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

type parser struct {
	headers *model.Headers
	solo    []model.Line
	players map[int][]model.Line
	current int // active performer id, 0 = unnamed
	closed  bool
	lineNum int
}

// Parse consumes r once, line by line, and returns the chart it encodes.
// The first violation of the line grammar stops the parse with a *ParseError.
func Parse(r io.Reader) (*model.Chart, error) {
	p := parser{
		headers: model.NewHeaders(),
		players: make(map[int][]model.Line),
	}
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		p.lineNum++
		line := sc.Text()
		if first {
			// chart files in the wild often open with a UTF-8 BOM
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.consume(line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading chart")
	}
	return p.finish()
}

// ParseFile opens path and parses it as one chart.
func ParseFile(path string) (*model.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening chart %v", path)
	}
	defer f.Close()
	return Parse(f)
}

func (p *parser) consume(line string) error {
	if p.closed {
		return &ParseError{Line: p.lineNum, Text: line, Msg: "content after terminating E line"}
	}
	switch {
	case strings.HasPrefix(line, "#") && strings.Contains(line, ":"):
		return p.consumeHeader(line)
	case line[0] == 'E':
		p.closed = true
		return nil
	case line[0] == 'P':
		return p.consumePlayer(line)
	case model.IsNoteTag(line[0]):
		p.consumeNote(line)
		return nil
	}
	return &ParseError{Line: p.lineNum, Text: line, Msg: "unrecognized line"}
}

func (p *parser) consumeHeader(line string) error {
	rest := line[1:]
	sep := strings.Index(rest, ":")
	key := rest[:sep]
	if p.headers.Has(key) {
		return &ParseError{Line: p.lineNum, Text: line, Msg: "duplicate header " + key}
	}
	p.headers.Set(key, rest[sep+1:])
	if key == model.HeaderGap || key == model.HeaderBPM {
		// normalize to the canonical comma form right away so every chart in
		// memory satisfies the numeric-header invariant
		v, err := p.headers.Float(key, 0)
		if err != nil {
			return &ParseError{Line: p.lineNum, Text: line, Msg: key + " is not a decimal number"}
		}
		p.headers.SetFloat(key, v)
	}
	return nil
}

func (p *parser) consumePlayer(line string) error {
	id, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil || id < 1 {
		return &ParseError{Line: p.lineNum, Text: line, Msg: "invalid player number"}
	}
	if _, ok := p.players[id]; ok {
		return &ParseError{Line: p.lineNum, Text: line, Msg: fmt.Sprintf("player %d appears twice", id)}
	}
	p.players[id] = nil
	p.current = id
	return nil
}

func (p *parser) consumeNote(line string) {
	l := model.Line{Tokens: strings.SplitN(line, " ", 5)}
	if p.current == 0 {
		p.solo = append(p.solo, l)
	} else {
		p.players[p.current] = append(p.players[p.current], l)
	}
}

func (p *parser) finish() (*model.Chart, error) {
	if !p.closed {
		return nil, &ParseError{Line: p.lineNum, Msg: "missing terminating E line"}
	}
	if len(p.solo) > 0 && len(p.players) > 0 {
		return nil, &ParseError{Line: p.lineNum, Msg: "mixed single player and multiplayer notes"}
	}
	chart := &model.Chart{Headers: p.headers}
	if len(p.players) > 0 {
		chart.Voices = &model.Duet{Players: p.players}
	} else {
		chart.Voices = &model.Solo{Lines: p.solo}
	}
	return chart, nil
}
