package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"promptpack/internal/llm"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available on the Ollama server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := llm.NewOllama(cfg.Ollama, cfg.Model)
		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("cannot reach Ollama at %s: %w", cfg.Ollama, err)
		}
		if len(models) == 0 {
			fmt.Println("No models installed. Try: ollama pull " + cfg.Model)
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, m := range models {
			marker := " "
			if m.Name == client.Model() {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s %s\t%s\n", marker, m.Name, llm.FormatSize(m.Size))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
