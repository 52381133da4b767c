package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/esc0rtd3w/performous-tools/config"
	"github.com/esc0rtd3w/performous-tools/constants"
	"github.com/esc0rtd3w/performous-tools/duet"
	"github.com/esc0rtd3w/performous-tools/model"
	"github.com/esc0rtd3w/performous-tools/title"
	"github.com/esc0rtd3w/performous-tools/txt"
)

var (
	mergeOutput string
	mergeTitle  string
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output path (default: derived from the input file names)")
	mergeCmd.Flags().StringVarP(&mergeTitle, "title", "t", "", "title for the merged chart (default: derived from the input titles)")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <chart> <chart>...",
	Short: "Merges single player charts into one duet chart",
	Long: `Merges two or more single player charts into one multiplayer chart.
The inputs must belong to the same audio track: differing GAP values are
reconciled by shifting notes, any other differing header stops the merge.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := MergeFiles(args, mergeOutput, mergeTitle)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// MergeFiles parses the given chart files, merges them and writes the result,
// returning the output path. An empty output or titleOverride means guess it
// from the inputs.
func MergeFiles(paths []string, output, titleOverride string) (string, error) {
	charts := make([]*model.Chart, 0, len(paths))
	for _, p := range paths {
		chart, err := txt.ParseFile(p)
		if err != nil {
			return "", err
		}
		charts = append(charts, chart)
	}

	merged, err := mergeCharts(charts, titleOverride)
	if err != nil {
		return "", err
	}

	if output == "" {
		output, err = title.GuessOutputPath(paths)
		if err != nil {
			return "", err
		}
		cfg, err := config.Load(constants.GetConfigDir())
		if err != nil {
			return "", err
		}
		if cfg.OutputDir != "" {
			output = filepath.Join(cfg.OutputDir, filepath.Base(output))
		}
	}
	if err := txt.WriteFile(output, merged); err != nil {
		return "", err
	}
	return output, nil
}

// mergeCharts folds charts into one duet, titled titleOverride or, when that
// is empty, a title guessed from the individual TITLE headers.
func mergeCharts(charts []*model.Chart, titleOverride string) (*model.Chart, error) {
	if len(charts) < 2 {
		return nil, errors.Errorf("need at least 2 charts to merge, got %d", len(charts))
	}
	name := titleOverride
	if name == "" {
		titles := make([]string, len(charts))
		for i, chart := range charts {
			titles[i] = chart.Title()
		}
		var err error
		name, err = title.Guess(titles)
		if err != nil {
			return nil, err
		}
	}
	return duet.Fold(charts, map[string]string{model.HeaderTitle: name})
}
