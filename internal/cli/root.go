package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/store"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resumescore",
		Short: "Score resumes against a skill catalog",
		Long: `Resumescore detects catalog skills in resume text, scores the resume
from 0 to 100 and explains the result with strengths, weaknesses and
recommendations. Resumes can be scored once from the command line or
uploaded, stored and analyzed through the HTTP server.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCommand(),
		newCatalogCommand(),
		newHistoryCommand(),
		newServeCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command line with the process arguments
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	return executeArgs(ctx, cfg, logger, os.Args[1:], os.Stdout)
}

func executeArgs(ctx context.Context, cfg *config.Config, logger *errors.Logger, args []string, stdout io.Writer) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)

	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	return rootCmd.ExecuteContext(ctx)
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("config not found in context")
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in context")
}

func getConfigAndLogger(cmd *cobra.Command) (*config.Config, *errors.Logger, error) {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore opens the configured store. The caller closes it.
func openStore(ctx context.Context, cfg *config.Config, logger *errors.Logger) (store.Store, error) {
	st, err := store.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	return st, nil
}

// resolveCommandConfig applies the default output format and validates it
func resolveCommandConfig(cfg *config.Config, flags common.CommandConfig) (common.CommandConfig, error) {
	format, err := common.ResolveOutputFormat(flags.OutputFormat, cfg.App.DefaultFormat, cfg.App.SupportedFormats)
	if err != nil {
		return common.CommandConfig{}, err
	}
	flags.OutputFormat = format
	return flags, nil
}

func closeStore(st store.Store, logger *errors.Logger) {
	if err := st.Close(); err != nil {
		logger.LogError(err, "Failed to close store")
	}
}

// registerFormatFlag adds --format and -o/--output to cmd
func registerFormatFlag(cmd *cobra.Command, cmdConfig *common.CommandConfig) {
	cmd.Flags().StringVarP(&cmdConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&cmdConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
