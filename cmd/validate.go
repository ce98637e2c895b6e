package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/planeswalker/internal/config"
	"github.com/arcanaland/planeswalker/internal/store"
	"github.com/arcanaland/planeswalker/internal/validator"
)

// newValidateCmd represents the validate command
func newValidateCmd(a *app) *cobra.Command {
	var flags userIDFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a collection directory for damaged records",
		Long: `Validate reads every record file of a user's collection and reports records
that cannot be parsed, that hold invalid values, or whose id does not match
their file name. Only the files backend keeps records as files.`,
		Args: cobra.NoArgs,
	}
	flags.register(cmd, false)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()
		if a.cfg.Backend != config.BackendFiles {
			return failure(out, fmt.Errorf("validate only works with the %s backend", config.BackendFiles))
		}
		if err := store.ValidateUser(flags.user); err != nil {
			return failure(out, err)
		}

		path := filepath.Join(a.cfg.DataDir, flags.user)
		results, err := validator.NewValidator(path).Validate()
		if err != nil {
			return failure(out, fmt.Errorf("validation error: %v", err))
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			success(out, "✅ Collection '%s' is valid (%d records).", flags.user, results.Records)
		} else {
			failureColor.Fprintf(out, "❌ Collection '%s' has %d validation errors:\n", flags.user, len(results.Errors))
			for i, msg := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, msg)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return ErrReported
		}
		return nil
	})
	return cmd
}
