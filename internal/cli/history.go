package cli

import (
	"context"
	"fmt"

	"resumescore/internal/common"
	"resumescore/internal/service"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

type historyOptions struct {
	output  common.CommandConfig
	resumes bool
	limit   int
}

func newHistoryCommand() *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analyses or resumes",
		Long: `List every analysis recorded in the configured store, oldest first.
With --resumes, list the stored resumes newest first instead.

History lives in the store, so this is only useful with the redis driver;
the memory store starts empty in every process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	registerFormatFlag(cmd, &opts.output)
	cmd.Flags().BoolVar(&opts.resumes, "resumes", false, "List stored resumes instead of analyses")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum number of resumes to list (0 lists all)")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *historyOptions) error {
	cfg, logger, err := getConfigAndLogger(cmd)
	if err != nil {
		return err
	}
	if opts.limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	cmdConfig, err := resolveCommandConfig(cfg, opts.output)
	if err != nil {
		return err
	}

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "memory" {
		logger.Warn("Listing history from the memory store, which is empty in a new process")
	}

	st, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	svc, err := service.NewFromConfig(cfg, st, logger)
	if err != nil {
		return err
	}

	runner := common.NewRunner(logger, cmd.OutOrStdout())
	if opts.resumes {
		return common.RunCommand(cmd.Context(), runner, cmdConfig,
			func(ctx context.Context) ([]types.ResumeSummary, error) {
				return svc.ListResumes(ctx, opts.limit)
			})
	}
	return common.RunCommand(cmd.Context(), runner, cmdConfig,
		func(ctx context.Context) ([]types.AnalysisResult, error) {
			return svc.ListAnalyses(ctx)
		})
}
