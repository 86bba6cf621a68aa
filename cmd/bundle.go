package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"promptpack/internal/bundle"

	"github.com/spf13/cobra"
)

var flagBundleRoot string

var bundleCmd = &cobra.Command{
	Use:   "bundle [prefix...]",
	Short: "Write a test-generation context file per feature prefix",
	Long: `For each prefix, collect every file whose name starts with it (plus the
shared backend setup files) into tests/<prefix>/<prefix>.context.
Without arguments the prefixes from the config file are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixes := args
		if len(prefixes) == 0 {
			prefixes = cfg.Bundle.Prefixes
		}
		if len(prefixes) == 0 {
			return fmt.Errorf("no prefixes given and none configured")
		}

		for _, prefix := range prefixes {
			out := bundle.ContextPath(flagBundleRoot, prefix)
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			n, err := bundle.CollectContext(bundle.ContextOptions{
				Root:   flagBundleRoot,
				Prefix: prefix,
				Output: out,
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("bundle %s: %w", prefix, err)
			}
			fmt.Printf("%-14s %3d files -> %s\n", prefix, n, out)
		}
		return nil
	},
}

func init() {
	bundleCmd.Flags().StringVar(&flagBundleRoot, "root", ".", "project root to scan")
	rootCmd.AddCommand(bundleCmd)
}
