// Package cli implements the qslcard command-line interface.
//
// The root command renders a card template from a config file and registers
// the callsign; subcommands register without rendering, list the registry
// and show which fonts are picked up.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and injected into the renderer, the font
// resolver and the registry store.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qslcard/pkg/buildinfo"
	"github.com/matzehuels/qslcard/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "qslcard"

	// envRoot overrides the project root when --root is not given.
	envRoot = "QSLCARD_ROOT"

	// envFontDirs lists extra font directories, separated like PATH.
	envFontDirs = "QSLCARD_FONT_DIRS"
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

	now func() time.Time

	// Persistent flags.
	root     string
	fontDirs []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		now:    time.Now,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates a card.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.generateCommand()
	root.Use = appName + " --config <path>"
	root.Short = "Generate QSL card templates"
	root.Long = `qslcard renders a transparent QSL card template from a per-callsign config
and registers the callsign in data/callsigns.json for the card service.`
	root.Version = buildinfo.Version
	root.SilenceUsage = true

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.root, "root", "", "project root holding data/ (default $"+envRoot+" or the current directory)")
	root.PersistentFlags().StringArrayVar(&c.fontDirs, "font-dir", nil, "additional font directory, searched first (repeatable)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(c.root, c.Logger); err != nil {
			return err
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		observability.SetRenderHooks(newRenderProgress(c.Logger))
		observability.SetRegistryHooks(registryProgress{})
		return nil
	}

	root.AddCommand(c.registerCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.completionCommand())

	return root
}
