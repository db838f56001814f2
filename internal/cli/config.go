package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/config"
)

// NewConfigCmd builds the settings management command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit application settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(newConfigSetDefaultCmd())
	cmd.AddCommand(newConfigAddNetworkCmd())
	cmd.AddCommand(newConfigSetSecretCmd())

	return cmd
}

func showConfig(cmd *cobra.Command) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	s := a.Config.Settings
	out := cmd.OutOrStdout()
	heading := color.New(color.Bold)

	fmt.Fprintf(out, "%s %s\n\n", heading.Sprint("Settings:"), s.Path())

	fmt.Fprintln(out, heading.Sprint("Defaults"))
	fmt.Fprintf(out, "  network: %s\n", orUnset(s.Defaults.Network))
	fmt.Fprintf(out, "  wallet:  %s\n\n", orUnset(s.Defaults.Wallet))

	fmt.Fprintln(out, heading.Sprint("Networks"))
	if len(s.Networks) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for name, nc := range s.Networks {
		fmt.Fprintf(out, "  %s: chain %d, %s\n", name, nc.ChainID, nc.RPCURL)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, heading.Sprint("Wallets"))
	if len(s.Wallets) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for name, wc := range s.Wallets {
		source := "keychain"
		if wc.EnvVar != "" {
			source = "env " + wc.EnvVar
		}
		fmt.Fprintf(out, "  %s (%s)\n", name, source)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func newConfigSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <network|wallet> <name>",
		Short: "Set the default network or wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			s := a.Config.Settings
			switch args[0] {
			case "network":
				s.Defaults.Network = args[1]
			case "wallet":
				s.Defaults.Wallet = args[1]
			default:
				return fmt.Errorf("unknown default %q, expected network or wallet", args[0])
			}
			return s.Save()
		},
	}
}

func newConfigAddNetworkCmd() *cobra.Command {
	var chainID uint64

	cmd := &cobra.Command{
		Use:   "add-network <name> <rpc-url>",
		Short: "Add or update a network",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			s := a.Config.Settings
			if s.Networks == nil {
				s.Networks = map[string]config.NetworkConfig{}
			}
			s.Networks[args[0]] = config.NetworkConfig{
				RPCURL:  args[1],
				ChainID: chainID,
			}
			return s.Save()
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Chain id of the network")
	_ = cmd.MarkFlagRequired("chain")

	return cmd
}

func newConfigSetSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-secret <name> <value>",
		Short: "Store a secret in the OS keychain",
		Long: `Store a secret in the OS keychain. Reference it from settings with
a keychain:<name> value, or from a wallet's keychain field.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			kc, ok := a.Secrets.(*config.Keychain)
			if !ok {
				return fmt.Errorf("no keychain backend available")
			}
			return kc.Set(args[0], args[1])
		},
	}
}
