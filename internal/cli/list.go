package cli

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/cli/render"
	"github.com/rac-sri/runic/internal/domain"
)

// NewListCmd builds the deployment listing command.
func NewListCmd() *cobra.Command {
	var (
		contractName string
		chainID      uint64
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List discovered deployments",
		Long: `List contract deployments discovered from the project's broadcast
artifacts, with proxies resolved to their implementations.`,
		Example: `  # List all deployments
  runic list

  # List Counter deployments on chain 31337
  runic list --contract Counter --chain 31337`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployments, _, err := a.Scanner.Discover()
			if err != nil {
				return err
			}

			if contractName != "" {
				deployments = lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
					return strings.EqualFold(d.BaseName(), contractName)
				})
			}
			if chainID != 0 {
				deployments = lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
					return d.ChainID == chainID
				})
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), a.Config.JSON)
			return renderer.Render(deployments)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Filter by chain id")

	return cmd
}
