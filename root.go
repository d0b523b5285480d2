package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckforge/config"
	"deckforge/logger"
)

type rootFlags struct {
	configPath string
	logLevel   string
	pretty     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "deckforge",
		Short:         "deckforge lays out slide decks and exports them to PPTX, PDF and HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (default $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().BoolVar(&flags.pretty, "pretty", false, "Human readable logs")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newStockCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadRuntime reads the configuration and builds the logger shared by the
// commands. Logs go to the command's error stream.
func loadRuntime(cmd *cobra.Command, flags *rootFlags) (*config.Config, *logger.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, newCommandError("load configuration", "reading config file and environment", err, "Check the config file and the environment variables it refers to.")
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: flags.pretty || cfg.Log.Pretty,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
