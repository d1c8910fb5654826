package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qslcard/pkg/card"
	"github.com/matzehuels/qslcard/pkg/registry"
)

// registerCommand creates the register command, which adds a callsign to
// the registry without rendering a card.
func (c *CLI) registerCommand() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "register --config <path>",
		Short: "Add the config's callsign to data/callsigns.json",
		Long: `Register adds the callsign of a card config to data/callsigns.json and
creates data/cards/<callsign>/backgrounds/. Callsigns that are already
registered (compared case-insensitively) are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root, err := projectRoot(c.root)
			if err != nil {
				return err
			}
			cfg, err := card.LoadConfig(config)
			if err != nil {
				return err
			}
			return c.register(ctx, root, cfg)
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "path to the card config")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagFilename("config", "json", "toml")

	return cmd
}

// register adds cfg's callsign to the registry under root.
func (c *CLI) register(ctx context.Context, root string, cfg *card.Config) error {
	store := registry.NewStore(dataDir(root), registry.WithLogger(loggerFromContext(ctx)))
	entry, added, err := store.Register(ctx, cfg.Callsign, cfg.Link(), c.now())
	if err != nil {
		return err
	}
	if added {
		printDetail("Created directory:")
		printFile(filepath.Join(store.CardDir(entry.ID), "backgrounds") + string(filepath.Separator))
	}
	return nil
}
