package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/config"
	"github.com/ramanasai/fator/internal/db"
	"github.com/ramanasai/fator/internal/labels"
	"github.com/ramanasai/fator/internal/logging"
)

var (
	cfgFile    string
	dbPath     string
	localeFlag string
	verbose    bool
)

// appState is what every subcommand shares once the root pre-run has loaded it.
type appState struct {
	cfg    config.Config
	log    *zap.Logger
	labels *labels.Catalog
	db     *sql.DB
}

var app appState

var rootCmd = &cobra.Command{
	Use:   "fator",
	Short: "Pick conversion factors from a categorised catalog",
	Long: `fator keeps a catalog of conversion factors (harvest index, root to shoot
ratio, ...) described by country, climate, biome, irrigation, soil and
cultivation system, and lets you narrow them down and pick one.

Examples:
	fator import catalog.xlsx                     # load constants
	fator pick harvestIndex                       # choose one interactively
	fator list harvestIndex --climate tropical    # filter from the shell
	fator list harvestIndex --soil not_informed   # records without a soil`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { teardown() },
}

func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}

	logger, err := logging.New(cfg, verbose)
	if err != nil {
		return err
	}

	cat, err := labels.Load(cfg.Locale)
	if err != nil {
		return err
	}
	if cfg.LabelsFile != "" {
		if cat, err = labels.LoadFile(cat, cfg.LabelsFile); err != nil {
			return err
		}
	}

	app = appState{cfg: cfg, log: logger, labels: cat}
	logger.Debug("command started", zap.String("command", cmd.CommandPath()), zap.Strings("args", args))
	return nil
}

// store opens the database on first use.
func (a *appState) store() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	path, err := a.cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	dbh, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("database opened", zap.String("path", path))
	a.db = dbh
	return dbh, nil
}

func teardown() {
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
	if app.log != nil {
		_ = app.log.Sync()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/fator/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Label locale: pt_BR|en")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	// Add commands; other files define these vars
	rootCmd.AddCommand(pickCmd, listCmd, addCmd, editCmd, deleteCmd, importCmd, summaryCmd, historyCmd, versionCmd)
}
