package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"promptpack/internal/index"
	"promptpack/internal/logging"
	"promptpack/internal/tui"
	"promptpack/internal/watch"

	"github.com/spf13/cobra"
)

var (
	flagSummarizer string
	flagPrune      bool
	flagRebuild    bool
	flagTUI        bool
	flagWatch      bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [path]",
	Short: "Summarize new and changed files into the index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagTUI && flagWatch {
			return fmt.Errorf("--tui and --watch cannot be combined")
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return err
		}

		backend, release, err := openIndex()
		if err != nil {
			return err
		}
		defer release()

		kind := cfg.Summarizer
		if cmd.Flags().Changed("summarizer") {
			kind = flagSummarizer
		}
		sum, err := newSummarizer(kind)
		if err != nil {
			return err
		}

		icfg := index.Config{
			Backend:    backend,
			Summarizer: sum,
			Filter:     indexFilter(),
			Logger:     logger,
			Prune:      flagPrune,
			Rebuild:    flagRebuild,
		}

		if flagTUI {
			// Log lines would tear the progress view.
			icfg.Logger = logging.New(io.Discard, cfg.LogLevel)
			stats, err := tui.RunProgress(cmd.Context(), func(ctx context.Context, onProgress index.ProgressFunc) (*index.Stats, error) {
				icfg.OnProgress = onProgress
				s, _, err := index.New(icfg).Index(ctx, root)
				return s, err
			})
			if stats != nil {
				fmt.Printf("Files: %s\n", stats)
			}
			return err
		}

		if err := summarizeOnce(cmd.Context(), index.New(icfg), root); err != nil || !flagWatch {
			return err
		}
		return watchAndSummarize(cmd.Context(), index.New(icfg), root)
	},
}

func summarizeOnce(ctx context.Context, ix *index.Indexer, root string) error {
	fmt.Printf("Summarizing %s...\n", root)
	start := time.Now()
	stats, _, err := ix.Index(ctx, root)
	if stats != nil {
		fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Files: %s\n", stats)
	}
	return err
}

func watchAndSummarize(ctx context.Context, ix *index.Indexer, root string) error {
	w, err := watch.New(root, watch.Options{
		Filter: indexFilter(),
		Ignore: []string{filepath.Base(cfg.IndexPath())},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Println("\nWatching for changes (Ctrl+C to stop)...")
	return w.Run(ctx, func(paths []string) {
		logger.Info("change detected", "paths", strings.Join(paths, ", "))
		if err := summarizeOnce(ctx, ix, root); err != nil && ctx.Err() == nil {
			logger.Error("summarize failed", "err", err)
		}
	})
}

func init() {
	summarizeCmd.Flags().StringVar(&flagSummarizer, "summarizer", "ollama", "summarizer: ollama or ast (offline, tree-sitter)")
	summarizeCmd.Flags().BoolVar(&flagPrune, "prune", false, "drop index records for files that no longer exist")
	summarizeCmd.Flags().BoolVar(&flagRebuild, "rebuild", false, "start from an empty index if the stored one is corrupt")
	summarizeCmd.Flags().BoolVar(&flagTUI, "tui", false, "show an interactive progress view")
	summarizeCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep running and re-summarize when files change")
	rootCmd.AddCommand(summarizeCmd)
}
