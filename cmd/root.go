package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"promptpack/internal/config"
	"promptpack/internal/index"
	"promptpack/internal/llm"
	"promptpack/internal/logging"
	"promptpack/internal/store"
	"promptpack/internal/symbols"
	"promptpack/internal/symbols/languages"
	"promptpack/internal/walker"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagOllama   string
	flagModel    string
	flagIndex    string
	flagStore    string
	flagLogLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "promptpack",
	Short:        "Build LLM prompt context from a source tree",
	SilenceUsage: true,
	Long: `promptpack keeps a hash-keyed index of per-file summaries produced by a
local Ollama model, and uses it to assemble prompt files for a request.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("ollama") {
			loaded.Ollama = flagOllama
		}
		if flags.Changed("model") {
			loaded.Model = flagModel
		}
		if flags.Changed("index") {
			loaded.Index = flagIndex
		}
		if flags.Changed("store") {
			loaded.Store = flagStore
		}
		if flags.Changed("log-level") {
			loaded.LogLevel = flagLogLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(os.Stderr, cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute is called by main.go.
func Execute() {
	// An interrupt stops after the file in flight; finished files are saved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&flagOllama, "ollama", llm.DefaultURL, "ollama base URL")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "qwen2.5-coder:14b", "model used for summaries and relevance")
	rootCmd.PersistentFlags().StringVar(&flagIndex, "index", "", "index location (default index.json, or index.db for sqlite)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "json", "index backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// openIndex takes the index lock and opens the configured backend. The
// returned release func closes the backend and drops the lock.
func openIndex() (store.Backend, func(), error) {
	path := cfg.IndexPath()
	lock := store.NewLock(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("index %s is locked by another promptpack process (%s)", path, lock.Path())
	}

	backend, err := store.Open(store.Kind(cfg.Store), path)
	if err != nil {
		lock.Unlock()
		return nil, nil, fmt.Errorf("open index: %w", err)
	}
	release := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing index failed", "err", err)
		}
		if err := lock.Unlock(); err != nil {
			logger.Warn("releasing index lock failed", "err", err)
		}
	}
	return backend, release, nil
}

func newSummarizer(kind string) (index.Summarizer, error) {
	switch kind {
	case "", "ollama":
		return index.NewOllamaSummarizer(llm.NewOllama(cfg.Ollama, cfg.Model), cfg.ExcerptChars), nil
	case "ast":
		reg := symbols.NewRegistry()
		languages.RegisterAll(reg)
		return index.NewASTSummarizer(reg), nil
	default:
		return nil, fmt.Errorf("unknown summarizer %q (want ollama or ast)", kind)
	}
}

// readIndex loads the index without taking the lock. JSON saves replace the
// file atomically and SQLite saves are transactional, so readers never see a
// partial write.
func readIndex() (store.Index, error) {
	backend, err := store.Open(store.Kind(cfg.Store), cfg.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer backend.Close()
	return backend.Load()
}

// indexFilter is the configured filter plus the index's own files, so an
// index kept inside the project is never summarized.
func indexFilter() walker.Filter {
	f := cfg.Filter()
	base := filepath.Base(cfg.IndexPath())
	f.Files = append(append([]string{}, f.Files...), base, base+".lock", base+"-wal", base+"-shm")
	return f
}
