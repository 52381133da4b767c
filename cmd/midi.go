package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esc0rtd3w/performous-tools/midi"
	"github.com/esc0rtd3w/performous-tools/txt"
)

var (
	midiOutput  string
	midiPreview int
)

func init() {
	midiCmd.Flags().StringVarP(&midiOutput, "output", "o", "", "output path (default: the chart path with a .mid extension)")
	midiCmd.Flags().IntVarP(&midiPreview, "preview", "p", 0, "only export the first N notes of each performer")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <chart>",
	Short: "Exports a chart as a Standard MIDI File",
	Long:  `Exports a chart as a Standard MIDI File with one track per performer.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := txt.ParseFile(args[0])
		if err != nil {
			return err
		}
		out := midiOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".mid"
		}
		if midiPreview > 0 {
			err = midi.WritePreviewFile(out, chart, midiPreview)
		} else {
			err = midi.WriteFile(out, chart)
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}
