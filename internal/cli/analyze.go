package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"resumescore/internal/common"
	"resumescore/internal/service"
	"resumescore/internal/store"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	output common.CommandConfig
	id     string
	seed   int64
	save   bool
}

func newAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [resume-file]",
		Short: "Score a resume file",
		Long: `Detect catalog skills in a plain text or markdown resume and score it.

The analysis includes:
- An overall score from 0 to 100
- Up to 10 detected skills with relevance and level
- Strengths, weaknesses and recommendations
- An overall assessment and a Java expertise rating

By default nothing is stored. With --save the resume is uploaded to the
configured store and the analysis is recorded in its history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	registerFormatFlag(cmd, &opts.output)
	cmd.Flags().StringVar(&opts.id, "id", "", "Resume id to report (default: a generated id)")
	cmd.Flags().Int64Var(&opts.seed, "seed", -1, "Seed for the relevance jitter (overrides config)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the resume and its analysis")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	baseCfg, logger, err := getConfigAndLogger(cmd)
	if err != nil {
		return err
	}
	if opts.save && opts.id != "" {
		return fmt.Errorf("--id cannot be combined with --save, stored resumes get their id from the store")
	}

	cmdConfig, err := resolveCommandConfig(baseCfg, opts.output)
	if err != nil {
		return err
	}

	cfg := *baseCfg
	if cmd.Flags().Changed("seed") {
		cfg.Scoring.Seed = opts.seed
	}

	var st store.Store = store.NewMemoryStore()
	if opts.save {
		st, err = openStore(cmd.Context(), &cfg, logger)
		if err != nil {
			return err
		}
	}
	defer closeStore(st, logger)

	svc, err := service.NewFromConfig(&cfg, st, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting resume analysis",
		"file", args[0],
		"output_format", cmdConfig.OutputFormat,
		"save", opts.save)

	runner := common.NewRunner(logger, cmd.OutOrStdout())
	err = common.RunFileCommand(cmd.Context(), runner, cmdConfig, args,
		func(ctx context.Context, files []common.InputFile) (types.AnalysisResult, error) {
			file := files[0]
			name := filepath.Base(file.Name)
			if !opts.save {
				return svc.AnalyzeFile(ctx, opts.id, name, file.Data)
			}

			resume, err := svc.Upload(ctx, name, "", file.Data)
			if err != nil {
				return types.AnalysisResult{}, err
			}
			return svc.AnalyzeResume(ctx, resume.ID)
		})
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	logger.Info("Resume analysis completed successfully")
	return nil
}
