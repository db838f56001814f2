package cli

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/abi"
	"github.com/rac-sri/runic/internal/app"
	"github.com/rac-sri/runic/internal/cli/render"
	"github.com/rac-sri/runic/internal/contracts"
	"github.com/rac-sri/runic/internal/domain"
	"github.com/rac-sri/runic/internal/network"
)

// NewCallCmd builds the contract call command.
func NewCallCmd() *cobra.Command {
	var (
		abiFrom  string
		valueStr string
	)

	cmd := &cobra.Command{
		Use:   "call [contract] [function] [args...]",
		Short: "Call a function on a deployed contract",
		Long: `Call a function on a discovered deployment. View and pure functions
execute as reads; anything else is signed and broadcast as a transaction.

Positional arguments select the contract, the function and its inputs.
Anything omitted is prompted for interactively.`,
		Example: `  # Read a value
  runic call Counter number

  # Write with an argument
  runic call Counter setNumber 42

  # Call a proxy using another deployment's interface
  runic call MyProxy --abi-from CounterV2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployments, _, err := a.Scanner.Discover()
			if err != nil {
				return err
			}

			target, err := pickDeployment(a, deployments, args)
			if err != nil {
				return err
			}

			if abiFrom != "" {
				donor, ok := lo.Find(deployments, func(d *domain.Deployment) bool {
					return strings.EqualFold(d.BaseName(), abiFrom)
				})
				if !ok {
					return fmt.Errorf("no deployment named %q to take the interface from", abiFrom)
				}
				target.UseInterfaceFrom(donor)
			}

			fn, err := pickFunction(a, target, args)
			if err != nil {
				return err
			}

			callArgs, err := collectArguments(a, fn, args)
			if err != nil {
				return err
			}

			value, err := parseValue(valueStr)
			if err != nil {
				return err
			}

			caller, err := buildCaller(cmd, a, target, fn)
			if err != nil {
				return err
			}

			spin := newSpinner(cmd, a, fn)
			if spin != nil {
				spin.Start()
			}
			result, err := caller.Call(cmd.Context(), target, fn, callArgs, value)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			renderer := render.NewCallResultRenderer(cmd.OutOrStdout(), a.Config.JSON)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&abiFrom, "abi-from", "", "Use another deployment's interface for this call")
	cmd.Flags().StringVar(&valueStr, "value", "", "Ether value in wei to send with the call")

	return cmd
}

// pickDeployment resolves the target deployment from the first positional
// argument, or prompts when names are ambiguous or absent.
func pickDeployment(a *app.App, deployments []*domain.Deployment, args []string) (*domain.Deployment, error) {
	if len(args) > 0 {
		matches := lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
			return !d.Hidden() && strings.EqualFold(d.BaseName(), args[0])
		})
		if len(matches) == 0 {
			return nil, fmt.Errorf("no deployment named %q", args[0])
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		return a.Selector.SelectDeployment(matches, fmt.Sprintf("Multiple %s deployments, pick one", args[0]))
	}
	return a.Selector.SelectDeployment(deployments, "Select a contract")
}

// pickFunction resolves the function from the second positional argument or
// interactively.
func pickFunction(a *app.App, d *domain.Deployment, args []string) (*abi.ContractFunction, error) {
	if len(args) > 1 {
		for i := range d.Functions {
			if d.Functions[i].Name == args[1] {
				return &d.Functions[i], nil
			}
		}
		return nil, fmt.Errorf("%s has no function named %q", d.BaseName(), args[1])
	}
	return a.Selector.SelectFunction(d, "Select a function")
}

// collectArguments maps remaining positional arguments onto the function's
// inputs and prompts for anything missing.
func collectArguments(a *app.App, fn *abi.ContractFunction, args []string) ([]string, error) {
	provided := []string{}
	if len(args) > 2 {
		provided = args[2:]
	}
	if len(provided) > len(fn.Inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", fn.Name, len(fn.Inputs), len(provided))
	}

	collected := make([]string, 0, len(fn.Inputs))
	collected = append(collected, provided...)
	for i := len(provided); i < len(fn.Inputs); i++ {
		value, err := a.Selector.PromptArgument(fn.Inputs[i])
		if err != nil {
			return nil, err
		}
		collected = append(collected, value)
	}
	return collected, nil
}

// buildCaller resolves the network endpoint for the deployment's chain and
// attaches a signer when the call will write.
func buildCaller(cmd *cobra.Command, a *app.App, d *domain.Deployment, fn *abi.ContractFunction) (*contracts.Caller, error) {
	var (
		info *network.NetworkInfo
		err  error
	)
	if a.Config.Network != "" {
		info, err = a.Resolver.Resolve(a.Config.Network)
	} else {
		info, err = a.Resolver.ResolveByChainID(d.ChainID)
	}
	if err != nil {
		return nil, err
	}

	provider := contracts.NewEthProvider(info.RPCURL, d.ChainID)
	if !fn.IsReadOnly() {
		key, err := a.Config.Settings.ResolveWalletKey(a.Config.Wallet, a.Secrets)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, contracts.ErrNoSigner
		}
		if _, err := provider.WithSigner(key); err != nil {
			return nil, err
		}
	}
	return contracts.NewCaller(provider, a.Log), nil
}

func parseValue(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid value %q, expected wei as a decimal integer", s)
	}
	return value, nil
}

// newSpinner shows progress for terminal sessions. JSON and non-interactive
// runs stay quiet.
func newSpinner(cmd *cobra.Command, a *app.App, fn *abi.ContractFunction) *spinner.Spinner {
	if a.Config.JSON || a.Config.NonInteractive {
		return nil
	}
	verb := "Calling"
	if !fn.IsReadOnly() {
		verb = "Sending"
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = fmt.Sprintf(" %s %s...", verb, fn.Name)
	return s
}
