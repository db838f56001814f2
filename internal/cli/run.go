package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/forge"
	"github.com/rac-sri/runic/internal/network"
)

// NewRunCmd builds the script execution command.
func NewRunCmd() *cobra.Command {
	var broadcastFlag bool

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a project deploy script",
		Long: `Run a deploy script with the project's toolchain, streaming its
output. Foundry projects use forge script; Hardhat projects use
npx hardhat run.`,
		Example: `  # Dry run against the selected network
  runic run script/Deploy.s.sol

  # Broadcast transactions
  runic run script/Deploy.s.sol --broadcast`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			var info *network.NetworkInfo
			if a.Config.Network != "" {
				info, err = a.Resolver.Resolve(a.Config.Network)
				if err != nil {
					return err
				}
			}

			result, err := a.Runner.Run(cmd.Context(), forge.RunConfig{
				ScriptPath: args[0],
				Network:    info,
				Broadcast:  broadcastFlag,
			})
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%s: %w", args[0], result.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&broadcastFlag, "broadcast", false, "Broadcast transactions instead of dry running")

	return cmd
}
