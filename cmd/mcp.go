package cmd

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"promptpack/internal/index"
	"promptpack/internal/llm"
	"promptpack/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the summary index",
	RunE:  runMCP,
}

// indexLoader returns the current index. Handlers call it on every request
// so a concurrent summarize run is picked up.
type indexLoader func() (store.Index, error)

func runMCP(cmd *cobra.Command, args []string) error {
	client := llm.NewOllama(cfg.Ollama, cfg.Model)

	s := mcpserver.NewMCPServer("promptpack", "1.0.0", mcpserver.WithToolCapabilities(false))
	s.AddTool(listIndexedFilesTool(), makeListFilesHandler(readIndex))
	s.AddTool(getFileSummaryTool(), makeFileSummaryHandler(readIndex))
	s.AddTool(selectRelevantFilesTool(), makeSelectRelevantHandler(readIndex, client))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func listIndexedFilesTool() mcp.Tool {
	return mcp.NewTool("list_indexed_files",
		mcp.WithDescription("List every summarized file with its language and the first line of its summary."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("language",
			mcp.Description("Optional language filter (e.g. 'go', 'javascript'). Case-insensitive."),
		),
	)
}

func getFileSummaryTool() mcp.Tool {
	return mcp.NewTool("get_file_summary",
		mcp.WithDescription("Get the stored summary, functions and variables of one file."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path as indexed (relative to the project root, forward slashes)"),
		),
	)
}

func selectRelevantFilesTool() mcp.Tool {
	return mcp.NewTool("select_relevant_files",
		mcp.WithDescription("Ask the local model which indexed files are relevant to a request, with a reason for each."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{
			ReadOnlyHint:    mcp.ToBoolPtr(true),
			DestructiveHint: mcp.ToBoolPtr(false),
			IdempotentHint:  mcp.ToBoolPtr(false),
			OpenWorldHint:   mcp.ToBoolPtr(false),
		}),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("The change or question the files should be relevant to"),
		),
	)
}

func makeListFilesHandler(load indexLoader) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		langFilter := strings.ToLower(req.GetString("language", ""))

		idx, err := load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load index failed: %v", err)), nil
		}

		var filtered []index.FileBrief
		for _, b := range index.Briefs(idx) {
			if langFilter == "" || strings.ToLower(b.Language) == langFilter {
				filtered = append(filtered, b)
			}
		}

		var sb strings.Builder
		if langFilter != "" {
			fmt.Fprintf(&sb, "## Indexed files (%d, language: %s)\n\n", len(filtered), langFilter)
		} else {
			fmt.Fprintf(&sb, "## Indexed files (%d)\n\n", len(filtered))
		}
		for _, b := range filtered {
			fmt.Fprintf(&sb, "- **%s** (%s): %s\n", b.FilePath, orDash(b.Language), snippet(b.Summary))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeFileSummaryHandler(load indexLoader) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		idx, err := load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load index failed: %v", err)), nil
		}
		rec, ok := idx[path]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("file %q not found in index; call list_indexed_files to see available paths", path)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## %s\n\n**Language:** %s\n\n%s\n", path, orDash(rec.Language), rec.Summary)
		if len(rec.Functions) > 0 {
			fmt.Fprintf(&sb, "\n**Functions:** %s\n", strings.Join(rec.Functions, ", "))
		}
		if len(rec.Variables) > 0 {
			fmt.Fprintf(&sb, "\n**Variables:** %s\n", strings.Join(rec.Variables, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeSelectRelevantHandler(load indexLoader, gen index.Generator) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request := req.GetString("request", "")
		if request == "" {
			return mcp.NewToolResultError("request is required"), nil
		}

		idx, err := load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load index failed: %v", err)), nil
		}
		if len(idx) == 0 {
			return mcp.NewToolResultText("The index is empty. Run 'promptpack summarize' first."), nil
		}

		relevant, err := index.SelectRelevant(ctx, gen, request, idx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("selection failed: %v", err)), nil
		}
		if len(relevant) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No relevant files for %q.", request)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Files relevant to %q (%d)\n\n", request, len(relevant))
		for _, r := range relevant {
			fmt.Fprintf(&sb, "- **%s**: %s\n", r.FilePath, r.Reason)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

const snippetRunes = 120

// snippet is the first line of summary, cut to snippetRunes characters.
func snippet(summary string) string {
	if i := strings.Index(summary, "\n"); i >= 0 {
		summary = summary[:i]
	}
	if utf8.RuneCountInString(summary) > snippetRunes {
		summary = string([]rune(summary)[:snippetRunes]) + "..."
	}
	if summary == "" {
		return "(no summary)"
	}
	return summary
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
