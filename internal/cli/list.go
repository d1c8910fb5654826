package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qslcard/pkg/registry"
)

// listCommand creates the list command, which prints the registry.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered callsigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(c.root)
			if err != nil {
				return err
			}
			store := registry.NewStore(dataDir(root), registry.WithLogger(loggerFromContext(cmd.Context())))
			entries, err := store.List()
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				printInfo("No callsigns registered in %s", store.Path)
				printNextStep("Register one", appName+" register --config <path>")
				return nil
			}

			fmt.Println(StyleTitle.Render("Registered callsigns") + " " + StyleNumber.Render(fmt.Sprintf("(%d)", len(entries))))
			for _, e := range entries {
				printKeyValue(e.Name, StyleLink.Render(e.QRZLink))
				printDetail("created %s", e.CreatedAt)
			}
			return nil
		},
	}
}
