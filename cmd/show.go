package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"promptpack/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagShowRaw bool

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Render the stored summary of one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := readIndex()
		if err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Clean(args[0]))
		rec, ok := idx[key]
		if !ok {
			return fmt.Errorf("%s is not in the index; run 'promptpack summarize' first", key)
		}

		md := tui.RecordMarkdown(key, rec)
		if flagShowRaw {
			fmt.Print(md)
			return nil
		}
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width = 80
		}
		out, err := tui.Render(md, width)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagShowRaw, "raw", false, "print Markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
