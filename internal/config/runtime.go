package config

import (
	"time"

	"github.com/rac-sri/runic/internal/project"
)

// RuntimeConfig carries the resolved per-invocation configuration: flags,
// environment, the detected project and the user's persisted settings.
type RuntimeConfig struct {
	ProjectRoot    string
	Project        *project.Project
	Settings       *Settings
	Chains         ChainNames
	Network        string
	Wallet         string
	NonInteractive bool
	JSON           bool
	Debug          bool
	Timeout        time.Duration
}
