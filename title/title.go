// Package title derives a name for a merged chart from the names of its
// sources, by longest common prefix.
package title

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var closers = map[rune]rune{'(': ')', '[': ']', '{': '}', '<': '>'}

// Guess finds the longest prefix (longer than 5 runes) shared by all names
// and turns it into a duet title: "Song (Lead)" + "Song (Harmony)" becomes
// "Song (Duet)". It fails when the names have no usable common prefix.
func Guess(names []string) (string, error) {
	if len(names) < 2 {
		return "", errors.Errorf("need at least 2 names to guess from, got %d", len(names))
	}
	runes := make([][]rune, len(names))
	longest := 0
	for i, n := range names {
		runes[i] = []rune(n)
		if len(runes[i]) > longest {
			longest = len(runes[i])
		}
	}
	for l := longest; l > 5; l-- {
		if prefix, ok := sharedPrefix(runes, l); ok {
			return decorate(prefix), nil
		}
	}
	return "", errors.Errorf("no reasonable common substring among %v", names)
}

// GuessOutputPath derives an output file path for a merge over the input
// paths: Guess over the file name stems, extension and directory taken from
// the first input.
func GuessOutputPath(paths []string) (string, error) {
	stems := make([]string, len(paths))
	for i, p := range paths {
		base := filepath.Base(p)
		stems[i] = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name, err := Guess(stems)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(paths[0]), name+filepath.Ext(paths[0])), nil
}

func sharedPrefix(runes [][]rune, l int) ([]rune, bool) {
	first := runes[0]
	if len(first) < l {
		return nil, false
	}
	for _, r := range runes[1:] {
		if len(r) < l {
			return nil, false
		}
		for i := 0; i < l; i++ {
			if r[i] != first[i] {
				return nil, false
			}
		}
	}
	return first[:l], true
}

// decorate appends the duet marker. A prefix ending right after an opening
// bracket, "Song (", keeps the bracket pair intact: "Song (Duet)".
func decorate(prefix []rune) string {
	if closer, ok := closers[prefix[len(prefix)-1]]; ok {
		return string(prefix) + "Duet" + string(closer)
	}
	return string(prefix) + " (Duet)"
}
