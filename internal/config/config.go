package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"promptpack/internal/bundle"
	"promptpack/internal/llm"
	"promptpack/internal/store"
	"promptpack/internal/walker"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".promptpack.yaml"

// Exclude lists what the file lister skips.
type Exclude struct {
	Dirs       []string `yaml:"dirs"`
	Files      []string `yaml:"files"`
	Extensions []string `yaml:"extensions"`
}

// Bundle configures the prefix bundler.
type Bundle struct {
	Prefixes []string `yaml:"prefixes"`
}

// Combine configures the directory combiner.
type Combine struct {
	Dirs      []string `yaml:"dirs"`
	EntryFile string   `yaml:"entry_file"`
	Output    string   `yaml:"output"`
}

// Config is the in-memory representation of .promptpack.yaml.
type Config struct {
	Ollama       string  `yaml:"ollama"`
	Model        string  `yaml:"model"`
	Summarizer   string  `yaml:"summarizer"`
	ExcerptChars int     `yaml:"excerpt_chars"`
	Store        string  `yaml:"store"`
	Index        string  `yaml:"index,omitempty"`
	LogLevel     string  `yaml:"log_level"`
	Exclude      Exclude `yaml:"exclude"`
	Bundle       Bundle  `yaml:"bundle"`
	Combine      Combine `yaml:"combine"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	f := walker.DefaultFilter()
	return &Config{
		Ollama:       llm.DefaultURL,
		Model:        "qwen2.5-coder:14b",
		Summarizer:   "ollama",
		ExcerptChars: 1000,
		Store:        string(store.KindJSON),
		LogLevel:     "info",
		Exclude: Exclude{
			Dirs:       f.Dirs,
			Files:      f.Files,
			Extensions: f.Extensions,
		},
		Bundle: Bundle{Prefixes: append([]string{}, bundle.DefaultPrefixes...)},
		Combine: Combine{
			Dirs:      append([]string{}, bundle.DefaultCombineDirs...),
			EntryFile: bundle.DefaultEntryFile,
			Output:    "combined_output.txt",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save marshals cfg and writes it to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values no command can act on.
func (c *Config) Validate() error {
	switch c.Summarizer {
	case "ollama", "ast":
	default:
		return fmt.Errorf("summarizer must be ollama or ast, got %q", c.Summarizer)
	}
	switch store.Kind(c.Store) {
	case store.KindJSON, store.KindSQLite:
	default:
		return fmt.Errorf("store must be json or sqlite, got %q", c.Store)
	}
	if c.ExcerptChars < 0 {
		return fmt.Errorf("excerpt_chars must not be negative")
	}
	return nil
}

// IndexPath returns the configured index location, or the backend default.
func (c *Config) IndexPath() string {
	if c.Index != "" {
		return c.Index
	}
	if store.Kind(c.Store) == store.KindSQLite {
		return store.DefaultSQLiteFile
	}
	return store.DefaultFile
}

// Filter converts the exclusions to a walker filter.
func (c *Config) Filter() walker.Filter {
	return walker.Filter{
		Dirs:       c.Exclude.Dirs,
		Files:      c.Exclude.Files,
		Extensions: c.Exclude.Extensions,
	}
}
