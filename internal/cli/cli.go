package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineart/pkg/buildinfo"
	"github.com/matzehuels/lineart/pkg/cache"
	"github.com/matzehuels/lineart/pkg/fonts"
	"github.com/matzehuels/lineart/pkg/grid"
	"github.com/matzehuels/lineart/pkg/pipeline"
	"github.com/matzehuels/lineart/pkg/sweep"
)

// appName names the cache directory and appears in help text.
const appName = "lineart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "lineart turns photos into pencil-style drawings",
		Long: `lineart renders photos as pencil-style line drawings.

Each source image is swept over a range of blur radii and darken levels,
one PNG per combination, and the results are collected on a labelled
contact sheet (summary.png) so the best variant can be picked at a glance.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(p sweep.Params, noCache, noGrid bool, jobs int) (*pipeline.Runner, error) {
	var composer *grid.Composer
	if !noGrid {
		var err error
		if composer, err = c.newComposer(); err != nil {
			return nil, err
		}
	}
	runner := pipeline.NewRunner(p, c.newCache(noCache), composer, c.Logger)
	runner.Jobs = jobs
	return runner, nil
}

func (c *CLI) newComposer() (*grid.Composer, error) {
	f, err := fonts.Label()
	if err != nil {
		return nil, err
	}
	return grid.NewComposer(f, c.Logger), nil
}

// newCache opens the on-disk lineart cache. Any failure to locate or
// create it disables caching instead of failing the command.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir, cache.DefaultMaxAge)
	if err != nil {
		c.Logger.Warn("caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/lineart/).
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
