// Package duet aligns and combines single-performer charts into one
// multi-performer chart.
package duet

import (
	"math"

	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/model"
)

// maxRelativeError bounds how far a computed shift may sit from a whole
// number of units before the charts count as unreconcilable.
const maxRelativeError = 0.0001

// ReconcileGaps makes a and b agree on one GAP value without changing how
// either chart sounds: the chart with the larger GAP has all its note start
// times shifted by the equivalent whole number of units. Equal GAPs are a
// no-op.
func ReconcileGaps(a, b *model.Chart) error {
	gapA, err := a.Headers.Float(model.HeaderGap, 0)
	if err != nil {
		return err
	}
	gapB, err := b.Headers.Float(model.HeaderGap, 0)
	if err != nil {
		return err
	}
	switch {
	case gapA > gapB:
		return shiftToGap(a, gapB)
	case gapB > gapA:
		return shiftToGap(b, gapA)
	}
	return nil
}

// shiftToGap rebases chart onto the GAP value target. The ms difference is
// converted to units at the chart's tempo (one unit = 1/4 beat); the shift
// only happens when that lands on a whole number of units, so the chart
// cannot drift off its audio.
func shiftToGap(chart *model.Chart, target float64) error {
	gap, err := chart.Headers.Float(model.HeaderGap, 0)
	if err != nil {
		return err
	}
	bpm, err := chart.Headers.Float(model.HeaderBPM, 0)
	if err != nil {
		return err
	}

	beats := (gap - target) / 60000 * bpm * 4
	if beats == 0 {
		return nil
	}
	shift := int(math.Round(beats))
	if shift == 0 {
		return errors.Errorf("incompatible GAP values %v and %v: the difference is only %v units, less than the timing resolution", gap, target, beats)
	}
	if relErr := math.Max(beats/float64(shift), float64(shift)/beats) - 1; relErr >= maxRelativeError {
		return errors.Errorf("incompatible GAP values %v and %v: a shift of %v units is not a whole number, merging would need finer tempo resolution", gap, target, beats)
	}
	if chart.Relative() {
		return errors.New("cannot timeshift a chart with relative timing")
	}

	// validate every line before touching any, so a failure leaves the
	// chart exactly as it was
	var shifted []pendingShift
	for _, timeline := range chart.Timelines() {
		for _, line := range timeline {
			start, err := line.StartTime()
			if err != nil {
				return err
			}
			if start+shift < 0 {
				return errors.Errorf("cannot shift %q by %d units: note %q would start before the track", chart.Title(), shift, line.String())
			}
			shifted = append(shifted, pendingShift{line, start + shift})
		}
	}
	for _, p := range shifted {
		p.line.SetStartTime(p.start)
	}
	chart.Headers.SetFloat(model.HeaderGap, target)
	return nil
}

type pendingShift struct {
	line  model.Line
	start int
}
