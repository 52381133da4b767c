package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esc0rtd3w/performous-tools/model"
	"github.com/esc0rtd3w/performous-tools/txt"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chart>",
	Short: "Shows a chart's headers and note counts",
	Long:  `Parses one chart and prints its headers, timing mode and per performer counts.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	chart, err := txt.ParseFile(path)
	if err != nil {
		return err
	}
	for _, key := range chart.Headers.Keys() {
		value, _ := chart.Headers.Get(key)
		fmt.Printf("#%v:%v\n", key, value)
	}
	switch v := chart.Voices.(type) {
	case *model.Solo:
		fmt.Println("mode: single player")
		fmt.Printf("notes: %v\n", describeLines(v.Lines))
	case *model.Duet:
		fmt.Printf("mode: %d players\n", v.NumPerformers())
		for _, id := range v.IDs() {
			fmt.Printf("P%d: %v\n", id, describeLines(v.Players[id]))
		}
	}
	return nil
}

func describeLines(lines []model.Line) string {
	notes := 0
	for _, l := range lines {
		switch l.Tag() {
		case model.TagNote, model.TagGolden, model.TagFreestyle:
			notes++
		}
	}
	return fmt.Sprintf("%d lines, %d notes", len(lines), notes)
}
