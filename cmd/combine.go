package cmd

import (
	"bufio"
	"fmt"
	"os"

	"promptpack/internal/bundle"

	"github.com/spf13/cobra"
)

var flagCombineOut string

var combineCmd = &cobra.Command{
	Use:   "combine [path]",
	Short: "Concatenate the backend directories and entry file into one file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		out := cfg.Combine.Output
		if cmd.Flags().Changed("output") || out == "" {
			out = flagCombineOut
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w := bufio.NewWriter(f)

		n, err := bundle.Combine(w, bundle.CombineOptions{
			Root:      root,
			Dirs:      cfg.Combine.Dirs,
			EntryFile: cfg.Combine.EntryFile,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("Combined %d files into %s\n", n, out)
		return nil
	},
}

func init() {
	combineCmd.Flags().StringVarP(&flagCombineOut, "output", "o", "combined_output.txt", "output file")
	rootCmd.AddCommand(combineCmd)
}
