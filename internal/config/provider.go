package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rac-sri/runic/internal/project"
)

// SetupViper creates the viper instance backing runtime configuration.
// Precedence: flags > RUNIC_* environment variables > defaults.
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("RUNIC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "2m")
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("debug", false)

	bindFlags(v, cmd)
	return v
}

// bindFlags binds any flags the user actually set, so unset flags don't
// shadow environment variables. Inherited persistent flags are included
// since subcommands receive the root's flags that way.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	bind := func(f *pflag.Flag) {
		if f.Changed {
			key := strings.ReplaceAll(f.Name, "-", "_")
			_ = v.BindPFlag(key, f)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
}

// NewRuntimeConfig resolves the full runtime configuration: project
// detection, persisted settings and the chain name table.
func NewRuntimeConfig(v *viper.Viper) (*RuntimeConfig, error) {
	root := v.GetString("project_root")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root, err = project.FindRoot(cwd)
		if err != nil {
			return nil, err
		}
	}

	proj, err := project.Detect(root)
	if err != nil {
		return nil, fmt.Errorf("detecting project at %s: %w", root, err)
	}

	settings, err := LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &RuntimeConfig{
		ProjectRoot:    root,
		Project:        proj,
		Settings:       settings,
		Chains:         DefaultChainNames(),
		Network:        v.GetString("network"),
		Wallet:         v.GetString("wallet"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Debug:          v.GetBool("debug"),
		Timeout:        v.GetDuration("timeout"),
	}, nil
}
