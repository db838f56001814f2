package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/rac-sri/runic/internal/cli/render"
	"github.com/rac-sri/runic/internal/network"
)

// NewNetworksCmd builds the network listing command.
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List networks from the application settings and the project's
foundry.toml rpc_endpoints, with their resolved endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			names := map[string]struct{}{}
			for name := range a.Config.Settings.Networks {
				names[name] = struct{}{}
			}
			if a.Config.Project != nil && a.Config.Project.Foundry != nil {
				for name := range a.Config.Project.Foundry.DefaultProfile().RPCEndpoints {
					names[name] = struct{}{}
				}
			}

			sorted := make([]string, 0, len(names))
			for name := range names {
				sorted = append(sorted, name)
			}
			sort.Strings(sorted)

			entries := make([]render.NetworkEntry, 0, len(sorted))
			for _, name := range sorted {
				info, err := a.Resolver.Resolve(name)
				if err != nil {
					entries = append(entries, render.NetworkEntry{
						Info: &network.NetworkInfo{Name: name},
						Err:  err,
					})
					continue
				}
				entries = append(entries, render.NetworkEntry{Info: info})
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), a.Config.JSON)
			return renderer.Render(entries)
		},
	}
}
