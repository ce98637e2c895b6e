package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newAddCmd represents the add command
func newAddCmd(a *app) *cobra.Command {
	var flags cardFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Adds a card to the collection",
		Long: `Add stores a new card in a user's collection, creating the collection
if it does not exist yet. Adding an id that is already taken fails.

Example:
  planeswalker add --user Javier --id 1 --name Counterspell --manaCost 2 \
    --color Blue --type Instant --rarity Uncommon \
    --rulesText "Counter target spell." --value 5`,
		Args: cobra.NoArgs,
	}
	flags.register(cmd)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		if err := a.store.Add(cmd.Context(), flags.user, flags.build(cmd)); err != nil {
			return failure(out, err)
		}
		success(out, "New card added to %s collection!", flags.user)
		return nil
	})
	return cmd
}

// newUpdateCmd represents the update command
func newUpdateCmd(a *app) *cobra.Command {
	var flags cardFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Updates a card in the collection",
		Long: `Update replaces every field of an existing card. Optional fields that are
not given are removed from the stored card.`,
		Args: cobra.NoArgs,
	}
	flags.register(cmd)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		if err := a.store.Update(cmd.Context(), flags.user, flags.build(cmd)); err != nil {
			return failure(out, err)
		}
		success(out, "Card updated at %s collection!", flags.user)
		return nil
	})
	return cmd
}

// newRemoveCmd represents the remove command
func newRemoveCmd(a *app) *cobra.Command {
	var flags userIDFlags
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Deletes a card from the collection",
		Args:  cobra.NoArgs,
	}
	flags.register(cmd, true)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		if err := a.store.Remove(cmd.Context(), flags.user, flags.id); err != nil {
			return failure(out, err)
		}
		success(out, "Card deleted from %s collection!", flags.user)
		return nil
	})
	return cmd
}

// newListCmd represents the list command
func newListCmd(a *app) *cobra.Command {
	var flags userIDFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists all cards in the collection",
		Args:  cobra.NoArgs,
	}
	flags.register(cmd, false)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		cards, err := a.store.List(cmd.Context(), flags.user)
		if err != nil {
			return failure(out, err)
		}

		success(out, "Cards in %s collection:", flags.user)
		total := 0
		for _, c := range cards {
			fmt.Fprintln(out, separator)
			displayCard(out, c)
			total += c.Value
		}
		fmt.Fprintln(out, separator)
		fmt.Fprintf(out, "%d cards, total value %d\n", len(cards), total)
		return nil
	})
	return cmd
}

// newReadCmd represents the read command
func newReadCmd(a *app) *cobra.Command {
	var flags userIDFlags
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Shows details of a specific card",
		Args:  cobra.NoArgs,
	}
	flags.register(cmd, true)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		c, err := a.store.Read(cmd.Context(), flags.user, flags.id)
		if err != nil {
			return failure(out, err)
		}
		displayCard(out, c)
		return nil
	})
	return cmd
}
