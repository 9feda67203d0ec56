package main

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix"
	"github.com/cognicore/alix/pkg/alix/config"
	"github.com/cognicore/alix/pkg/alix/store"
	"github.com/cognicore/alix/pkg/alix/store/sqlite"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "alix",
		Short:         "alix",
		Long:          `linguistic pre-processing of French text`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, _ := cmd.Flags().GetString("log-level")
			return log.Setup("alix", lvl)
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "config file path, embedded dictionaries when empty")
	root.PersistentFlags().String("log-level", "warn", "`debug/info/warn/error`")

	root.AddCommand(newAnalyzeCmd(), newMWECmd(), newSearchCmd())
	return root
}

// loadComponents reads the configuration named by path, or the default one.
func loadComponents(path string) (*config.Components, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	}
	return (&config.Loader{Config: cfg}).Load()
}

// buildEngine wires the analyzer; dbPath may be empty to analyze without
// storing.
func buildEngine(ctx context.Context, configPath, dbPath string) (*alix.Alix, func(), error) {
	comp, err := loadComponents(configPath)
	if err != nil {
		return nil, nil, err
	}

	var st store.Store
	if dbPath != "" {
		if st, err = sqlite.OpenSQLite(ctx, dbPath); err != nil {
			comp.Close()
			return nil, nil, errors.Wrapf(err, "open database `%s`", dbPath)
		}
	}

	engine := alix.New(alix.Options{Store: st, Pipeline: comp.Pipeline()})
	cleanup := func() {
		engine.Close()
		comp.Close()
	}
	return engine, cleanup, nil
}
