package project

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FoundryConfig mirrors the parts of foundry.toml runic cares about.
type FoundryConfig struct {
	Profile map[string]FoundryProfile `toml:"profile"`
}

// FoundryProfile is one [profile.<name>] section.
type FoundryProfile struct {
	Src          string            `toml:"src"`
	Out          string            `toml:"out"`
	Script       string            `toml:"script"`
	Broadcast    string            `toml:"broadcast"`
	Libs         []string          `toml:"libs"`
	RPCEndpoints map[string]string `toml:"rpc_endpoints"`
}

// DefaultProfile returns the default profile, or an empty one when the file
// declares none.
func (c *FoundryConfig) DefaultProfile() FoundryProfile {
	if c == nil {
		return FoundryProfile{}
	}
	return c.Profile["default"]
}

// RPCEndpoint returns the raw rpc_endpoints entry for a network name.
func (c *FoundryConfig) RPCEndpoint(network string) (string, bool) {
	url, ok := c.DefaultProfile().RPCEndpoints[network]
	return url, ok
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// LoadFoundry parses foundry.toml and resolves the project's directory
// layout, applying Foundry's conventional defaults for unset entries.
func LoadFoundry(root string) (*Project, error) {
	var cfg FoundryConfig
	if _, err := toml.DecodeFile(filepath.Join(root, "foundry.toml"), &cfg); err != nil {
		return nil, fmt.Errorf("parsing foundry.toml: %w", err)
	}

	profile := cfg.DefaultProfile()
	return &Project{
		Type:         Foundry,
		Root:         root,
		Name:         projectName(root),
		SrcDir:       filepath.Join(root, orDefault(profile.Src, "src")),
		OutDir:       filepath.Join(root, orDefault(profile.Out, "out")),
		ScriptDir:    filepath.Join(root, orDefault(profile.Script, "script")),
		BroadcastDir: filepath.Join(root, orDefault(profile.Broadcast, "broadcast")),
		Foundry:      &cfg,
	}, nil
}

// LoadHardhat builds a Project from Hardhat's conventional layout. The
// config file itself is JavaScript and is not parsed.
func LoadHardhat(root string) (*Project, error) {
	return &Project{
		Type:         Hardhat,
		Root:         root,
		Name:         projectName(root),
		SrcDir:       filepath.Join(root, "contracts"),
		OutDir:       filepath.Join(root, "artifacts"),
		ScriptDir:    filepath.Join(root, "scripts"),
		BroadcastDir: filepath.Join(root, "deployments"),
	}, nil
}
