package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/qslcard/pkg/card"
	"github.com/matzehuels/qslcard/pkg/fonts"
)

// generateOptions holds the flags of the root (generate) command.
type generateOptions struct {
	config     string
	output     string
	noRegister bool
}

// generateCommand creates the command that renders a card template.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Args: cobra.NoArgs,
		Example: `  qslcard --config configs/oe8kks.json
  qslcard --config configs/oe8kks.toml --output /tmp/card.png --no-register`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "path to the card config (JSON, or TOML by extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default data/cards/<callsign>/card.png)")
	cmd.Flags().BoolVar(&opts.noRegister, "no-register", false, "do not register the callsign, regardless of the config")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagFilename("config", "json", "toml")
	_ = cmd.MarkFlagFilename("output", "png")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOptions) error {
	logger := loggerFromContext(ctx)

	root, err := projectRoot(c.root)
	if err != nil {
		return err
	}
	cfg, err := card.LoadConfig(opts.config)
	if err != nil {
		return err
	}

	printInfo("Generating card template for %s", StyleHighlight.Render(cfg.DisplayCallsign()))

	prog := newProgress(logger)
	resolver := fonts.NewSystemResolver(
		fonts.WithLogger(logger),
		fonts.WithDirs(fontDirs(c.fontDirs)...),
	)
	renderer := card.NewRenderer(card.DefaultLayout(), resolver,
		card.WithLogger(logger),
		card.WithProjectRoot(root),
	)
	canvas, err := renderer.Render(ctx, cfg)
	if err != nil {
		return err
	}
	prog.done("Rendered card")

	output := opts.output
	if output == "" {
		output = defaultOutput(root, cfg.ID())
	}
	if err := savePNG(ctx, canvas, output); err != nil {
		return err
	}
	printFile(output)

	switch {
	case opts.noRegister:
		logger.Debug("Registration disabled by flag")
	case !cfg.Register():
		logger.Debug("Registration disabled by config")
	default:
		printInfo("Registering callsign...")
		if err := c.register(ctx, root, cfg); err != nil {
			return err
		}
	}

	printSuccess("Done!")
	return nil
}

// savePNG writes the canvas to path, with a spinner on interactive terminals.
// Encoding a full-size card takes a noticeable moment.
func savePNG(ctx context.Context, canvas *card.Canvas, path string) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		if err := canvas.SavePNG(path); err != nil {
			return err
		}
		printSuccess("Saved")
		return nil
	}

	spinner := startSpinner(ctx, os.Stderr, "Encoding PNG...")
	if err := canvas.SavePNG(path); err != nil {
		spinner.StopWithError("Saving failed")
		return err
	}
	spinner.StopWithSuccess("Saved")
	return nil
}
