package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/app"
	"github.com/rac-sri/runic/internal/config"
)

type contextKey string

// appKey is the context key commands use to retrieve the wired App.
const appKey contextKey = "app"

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "runic",
		Short: "Inspect and call deployed smart contracts",
		Long: `Runic discovers contract deployments from Foundry and Hardhat build
artifacts, resolves proxies to their implementations, and lets you call
contract functions directly from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(cmd)
			cfg, err := config.NewRuntimeConfig(v)
			if err != nil {
				return err
			}

			appInstance, err := app.InitApp(cfg)
			if err != nil {
				return fmt.Errorf("initializing application: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g. mainnet, sepolia)")
	rootCmd.PersistentFlags().StringP("wallet", "w", "", "Wallet to sign write transactions with")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")

	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewCallCmd())
	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the wired App placed in the command context by the root
// PersistentPreRunE.
func getApp(cmd *cobra.Command) (*app.App, error) {
	a, ok := cmd.Context().Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}
