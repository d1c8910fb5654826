package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qslcard/pkg/fonts"
)

// fontsCommand creates the fonts command, which shows the font file chosen
// for each style the card uses.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "Show which font files the card would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := fonts.NewSystemResolver(
				fonts.WithLogger(loggerFromContext(cmd.Context())),
				fonts.WithDirs(fontDirs(c.fontDirs)...),
			)

			for _, style := range []fonts.Style{fonts.Regular, fonts.Bold, fonts.SerifBoldItalic} {
				if path, ok := r.Locate(style); ok {
					printKeyValue(style.String(), path)
				} else {
					printKeyValue(style.String(), StyleWarning.Render("embedded fallback"))
				}
			}

			printDetail("Search directories:")
			for _, dir := range r.SearchDirs() {
				printFile(dir)
			}
			return nil
		},
	}
}
