package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/planeswalker/internal/config"
	"github.com/arcanaland/planeswalker/internal/logger"
	"github.com/arcanaland/planeswalker/internal/store"
	"github.com/arcanaland/planeswalker/internal/store/filestore"
	"github.com/arcanaland/planeswalker/internal/store/sqlitestore"
)

// ErrReported is returned by commands that already printed their failure
var ErrReported = errors.New("command failed")

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// app carries what the subcommands share for one invocation
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	store   *store.Store
}

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "planeswalker",
		Short: "Manage your trading card collection",
		Long: `Planeswalker is a command-line tool for keeping track of Magic cards.
Every user owns a collection; every card in it is stored as its own record,
addressed by the user name and the card id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/planeswalker/config.toml)")
	flags.String("data-dir", "", "directory holding the collections")
	flags.String("backend", "", "storage backend (files, sqlite)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.Bool("no-color", false, "disable colored output")

	root.AddCommand(
		newAddCmd(a),
		newUpdateCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newReadCmd(a),
		newCollectionCmd(a),
		newValidateCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup loads the configuration and opens the card store
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	switch cfg.Color {
	case config.ColorNever:
		colorize.NoColor = true
	case config.ColorAlways:
		colorize.NoColor = false
	}

	a.log = logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	a.store = store.New(backend, a.log)
	a.log.Debug("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return nil
}

// run wraps a command body with setup and closes the store whether it fails
// or not. Commands not built with run, such as help and completion, never
// load the config or open storage.
func (a *app) run(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		defer func() {
			if err := a.store.Close(); err != nil {
				a.log.Error("error closing store", "error", err)
			}
		}()
		return fn(cmd)
	}
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendFiles:
		return filestore.New(cfg.DataDir)
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("error creating data directory: %v", err)
		}
		return sqlitestore.New(cfg.DatabasePath())
	}
	return nil, fmt.Errorf("%w: %s", store.ErrUnknownBackend, cfg.Backend)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
