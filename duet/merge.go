package duet

import (
	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/model"
	"github.com/esc0rtd3w/performous-tools/util"
)

// Merge folds src into dst as a new performer, mutating dst. dst must be
// multiplayer and src single-player. The two charts are first rebased onto a
// shared GAP; then every header dst carries must match src exactly, except
// keys listed in overrides, which are written onto dst afterwards. Headers
// only src carries are ignored.
func Merge(dst, src *model.Chart, overrides map[string]string) error {
	target, ok := dst.Voices.(*model.Duet)
	if !ok {
		return errors.New("merge target must be a multiplayer chart")
	}
	source, ok := src.Voices.(*model.Solo)
	if !ok {
		return errors.New("merge source must be a single player chart")
	}

	if err := ReconcileGaps(dst, src); err != nil {
		return err
	}

	for _, key := range dst.Headers.Keys() {
		if _, ok := overrides[key]; ok {
			continue
		}
		want, _ := dst.Headers.Get(key)
		got, ok := src.Headers.Get(key)
		if !ok || got != want {
			return errors.Errorf("charts disagree on header %s: %q vs %q", key, want, got)
		}
	}

	target.Players[target.MaxID()+1] = source.Lines

	for _, key := range util.SortedKeys(overrides) {
		dst.Headers.Set(key, overrides[key])
	}
	return nil
}

// Fold merges two or more charts left to right: the first is promoted to
// multiplayer and becomes performer 1, the second merges in as performer 2,
// and so on. The first chart is mutated into the result.
func Fold(charts []*model.Chart, overrides map[string]string) (*model.Chart, error) {
	if len(charts) < 2 {
		return nil, errors.Errorf("need at least 2 charts to merge, got %d", len(charts))
	}
	dst := charts[0]
	if err := dst.Promote(); err != nil {
		return nil, err
	}
	for _, src := range charts[1:] {
		if err := Merge(dst, src, overrides); err != nil {
			return nil, err
		}
	}
	return dst, nil
}
