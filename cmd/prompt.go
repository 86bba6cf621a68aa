package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptpack/internal/index"
	"promptpack/internal/llm"

	"github.com/spf13/cobra"
)

var (
	flagPromptOut string
	flagAsk       bool
)

var promptCmd = &cobra.Command{
	Use:   `prompt "<request>" [path]`,
	Short: "Refresh the index and write a prompt with the files relevant to a request",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := args[0]
		root := "."
		if len(args) == 2 {
			root = args[1]
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

		sum, err := newSummarizer(cfg.Summarizer)
		if err != nil {
			return err
		}
		stats, idx, err := index.New(index.Config{
			Backend:    backend,
			Summarizer: sum,
			Filter:     indexFilter(),
			Logger:     logger,
		}).Index(cmd.Context(), root)
		if err != nil {
			return err
		}
		logger.Info("index updated", "files", stats.String())

		client := llm.NewOllama(cfg.Ollama, cfg.Model)
		relevant, err := index.SelectRelevant(cmd.Context(), client, request, idx)
		if err != nil {
			return fmt.Errorf("select relevant files: %w", err)
		}
		if len(relevant) == 0 {
			return fmt.Errorf("%w for %q; %s not written", index.ErrNoRelevantFiles, request, flagPromptOut)
		}
		for _, r := range relevant {
			if _, ok := idx[r.FilePath]; !ok {
				logger.Warn("model picked a file that is not indexed", "path", r.FilePath)
				continue
			}
			logger.Info("relevant file", "path", r.FilePath, "reason", r.Reason)
		}

		var b strings.Builder
		if err := index.WritePrompt(&b, request, relevant, index.IndexedReader(root, idx)); err != nil {
			return err
		}
		if err := os.WriteFile(flagPromptOut, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		fmt.Printf("Wrote %s (%d relevant files)\n", flagPromptOut, len(relevant))

		if !flagAsk {
			return nil
		}
		answer, err := client.Chat(cmd.Context(), []llm.Message{{Role: "user", Content: b.String()}})
		if err != nil {
			return fmt.Errorf("ask model: %w", err)
		}
		fmt.Println()
		fmt.Println(answer)
		return nil
	},
}

func init() {
	promptCmd.Flags().StringVarP(&flagPromptOut, "output", "o", "prompt.txt", "prompt file to write")
	promptCmd.Flags().BoolVar(&flagAsk, "ask", false, "also send the prompt to the model and print the answer")
	rootCmd.AddCommand(promptCmd)
}
