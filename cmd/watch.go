package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"

	"github.com/esc0rtd3w/performous-tools/constants"
)

var (
	watchOutput string
	watchTitle  string
)

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output path (default: derived from the input file names)")
	watchCmd.Flags().StringVarP(&watchTitle, "title", "t", "", "title for the merged chart (default: derived from the input titles)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <chart> <chart>...",
	Short: "Merges charts and re-merges whenever an input changes",
	Long: `Merges like the merge command, then keeps watching the input files
and re-merges on every change until interrupted.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(args)
	},
}

func watch(paths []string) error {
	remerge := func() {
		out, err := MergeFiles(paths, watchOutput, watchTitle)
		if err != nil {
			reportError(err)
			return
		}
		fmt.Println(out)
	}
	remerge()

	// editors fire several change events per save; coalesce them
	debounced := debounce.New(constants.WatchInterval)

	mtimes := make(map[string]time.Time)
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil {
			mtimes[p] = st.ModTime()
		}
	}

	ticker := time.NewTicker(constants.WatchInterval)
	defer ticker.Stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			for _, p := range paths {
				st, err := os.Stat(p)
				if err != nil {
					continue
				}
				if mt := st.ModTime(); mt.After(mtimes[p]) {
					mtimes[p] = mt
					debounced(remerge)
				}
			}
		case <-sig:
			return nil
		}
	}
}
