package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Type identifies the build tool a project uses.
type Type string

const (
	Foundry Type = "foundry"
	Hardhat Type = "hardhat"
)

// Project describes a detected smart contract project and its conventional
// directory layout.
type Project struct {
	Type         Type
	Root         string
	Name         string
	SrcDir       string
	OutDir       string
	ScriptDir    string
	BroadcastDir string

	// Foundry holds the parsed foundry.toml for Foundry projects.
	Foundry *FoundryConfig
}

// Detect inspects a directory for a known project configuration file.
// Foundry wins when both are present.
func Detect(root string) (*Project, error) {
	if _, err := os.Stat(filepath.Join(root, "foundry.toml")); err == nil {
		return LoadFoundry(root)
	}
	for _, name := range []string{"hardhat.config.js", "hardhat.config.ts"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return LoadHardhat(root)
		}
	}
	return nil, fmt.Errorf(
		"no Foundry or Hardhat project detected at %s (expected foundry.toml, hardhat.config.js, or hardhat.config.ts)",
		root,
	)
}

// FindRoot walks up from dir looking for a project configuration file.
func FindRoot(dir string) (string, error) {
	for {
		for _, name := range []string{"foundry.toml", "hardhat.config.js", "hardhat.config.ts"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not inside a Foundry or Hardhat project")
		}
		dir = parent
	}
}

func projectName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "unknown"
	}
	return filepath.Base(abs)
}
