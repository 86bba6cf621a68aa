package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"promptpack/internal/index"
	"promptpack/internal/walker"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "List files that summarize would process, without calling the model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		idx, err := readIndex()
		if err != nil {
			return err
		}
		files, err := walker.List(root, indexFilter())
		if err != nil {
			return err
		}

		live := make(map[string]bool, len(files))
		var added, changed, unchanged int
		for _, f := range files {
			live[f.RelPath] = true
			hash, err := index.ComputeHash(filepath.Join(root, filepath.FromSlash(f.RelPath)))
			if err != nil {
				logger.Warn("cannot hash file", "path", f.RelPath, "err", err)
				continue
			}
			rec, ok := idx[f.RelPath]
			switch {
			case !ok:
				added++
				fmt.Printf("new      %s\n", f.RelPath)
			case rec.Hash != hash:
				changed++
				fmt.Printf("changed  %s\n", f.RelPath)
			default:
				unchanged++
			}
		}

		var stale []string
		for p := range idx {
			if !live[p] {
				stale = append(stale, p)
			}
		}
		sort.Strings(stale)
		for _, p := range stale {
			fmt.Printf("stale    %s\n", p)
		}

		fmt.Printf("\n%d new, %d changed, %d unchanged, %d stale\n", added, changed, unchanged, len(stale))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
