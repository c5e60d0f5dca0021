package cli

import (
	"context"

	"resumescore/internal/common"
	"resumescore/internal/service"
	"resumescore/internal/store"
	"resumescore/internal/types"

	"github.com/spf13/cobra"
)

func newCatalogCommand() *cobra.Command {
	var output common.CommandConfig

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the skills resumes are scored against",
		Long: `List the active skill catalog: the built-in Java role catalog, or the
file named by scoring.catalogFile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := getConfigAndLogger(cmd)
			if err != nil {
				return err
			}
			cmdConfig, err := resolveCommandConfig(cfg, output)
			if err != nil {
				return err
			}

			svc, err := service.NewFromConfig(cfg, store.NewMemoryStore(), logger)
			if err != nil {
				return err
			}

			runner := common.NewRunner(logger, cmd.OutOrStdout())
			return common.RunCommand(cmd.Context(), runner, cmdConfig,
				func(context.Context) (types.CatalogListing, error) {
					return svc.Catalog(), nil
				})
		},
	}

	registerFormatFlag(cmd, &output)
	return cmd
}
