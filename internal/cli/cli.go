// Package cli implements the plinth command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plinth/pkg/buildinfo"
	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/observability"
	"github.com/matzehuels/plinth/pkg/pipeline"
	"github.com/matzehuels/plinth/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "plinth"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs. It is never nil.
	Config *Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Plinth lays out box trees and renders them",
		Long:         `Plinth is a CLI tool for computing box-model layouts of nested rectangles and text, and rendering them as SVG, PNG, PDF, JSON or Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.NewLogHooks(c.Logger).Register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/plinth/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache opens the configured cache. Without configuration the CLI uses a
// file cache under the XDG cache directory.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
		cfg.Backend = cache.BackendFile
	}
	return cache.Open(cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/plinth/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file path
// (~/.config/plinth/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills options from the config file where the matching flag was
// not given on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	cfg := c.Config
	changed := cmd.Flags().Changed
	if !changed("width") && cfg.Viewport.Width > 0 {
		opts.Width = cfg.Viewport.Width
	}
	if !changed("height") && cfg.Viewport.Height > 0 {
		opts.Height = cfg.Viewport.Height
	}
	if !changed("font") && cfg.Text.Font != "" {
		opts.Font = cfg.Text.Font
	}
	if !changed("font-size") && cfg.Text.Size > 0 {
		opts.FontSize = cfg.Text.Size
	}
	if !changed("line-height") && cfg.Text.LineHeight > 0 {
		opts.LineHeight = cfg.Text.LineHeight
	}
	opts.Logger = c.Logger
}

// addLayoutFlags registers the flags every layout-producing command shares.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float32Var(&opts.Width, "width", 0, "viewport width (default: document, then 800)")
	cmd.Flags().Float32Var(&opts.Height, "height", 0, "viewport height (default: document, then 600)")
	cmd.Flags().StringVar(&opts.Font, "font", "", "TTF/OTF font file (default: Go Regular)")
	cmd.Flags().Float32Var(&opts.FontSize, "font-size", pipeline.DefaultFontSize, "font size in pixels")
	cmd.Flags().Float32Var(&opts.LineHeight, "line-height", pipeline.DefaultLineHeight, "line height as a multiple of the font's")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
