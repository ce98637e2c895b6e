package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCollectionCmd represents the collection command group
func newCollectionCmd(a *app) *cobra.Command {
	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Inspect the collections in your data directory",
	}

	listCmd := &cobra.Command{
		Use:   "ls",
		Short: "List every collection with its number of cards",
		Args:  cobra.NoArgs,
	}
	listCmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		infos, err := a.store.Collections(cmd.Context())
		if err != nil {
			return failure(out, err)
		}

		if len(infos) == 0 {
			fmt.Fprintln(out, "No collections found.")
			fmt.Fprintln(out, "Run 'planeswalker add' to create one.")
			return nil
		}

		for _, info := range infos {
			noun := "cards"
			if info.Cards == 1 {
				noun = "card"
			}
			fmt.Fprintf(out, "  %s (%d %s)\n", info.User, info.Cards, noun)
		}
		return nil
	})

	collectionCmd.AddCommand(listCmd)
	return collectionCmd
}
