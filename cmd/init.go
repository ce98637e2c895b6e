package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/planeswalker/internal/config"
)

// newInitCmd represents the init command. The root pre-run already creates
// the config file and data directory; init reports where they live.
func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the config file and data directory",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		out := cmd.OutOrStdout()

		configPath := a.cfgFile
		if configPath == "" {
			configPath = config.GetConfigFilePath()
		}
		fmt.Fprintln(out, "Config file initialized at:", configPath)

		switch a.cfg.Backend {
		case config.BackendSQLite:
			fmt.Fprintln(out, "Card database initialized at:", a.cfg.DatabasePath())
		default:
			fmt.Fprintln(out, "Collections directory initialized at:", a.cfg.DataDir)
		}
		return nil
	})
	return cmd
}
