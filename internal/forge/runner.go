package forge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"

	"github.com/rac-sri/runic/internal/network"
	"github.com/rac-sri/runic/internal/project"
)

// RunConfig describes one script execution request.
type RunConfig struct {
	// ScriptPath is relative to the project root.
	ScriptPath string
	Network    *network.NetworkInfo
	// Broadcast submits transactions; without it forge performs a dry run.
	Broadcast bool
	// Env holds extra KEY=VALUE pairs exported to the script.
	Env []string
}

// RunResult captures one finished script run.
type RunResult struct {
	Script    string
	Success   bool
	RawOutput []byte
	Duration  time.Duration
	Err       error
}

// Runner executes project deploy scripts with live output streaming. The
// child runs under a pty so tools keep their color output and progress
// rendering.
type Runner struct {
	proj *project.Project
	out  io.Writer
	log  *slog.Logger
}

func NewRunner(proj *project.Project, out io.Writer, log *slog.Logger) *Runner {
	return &Runner{proj: proj, out: out, log: log}
}

// Run executes the script and streams its output until it exits or ctx is
// canceled. The subprocess error, if any, lands in RunResult.Err; only
// failures to launch surface as a returned error.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	name, args := r.command(cfg)
	r.log.Debug("running script", "cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.proj.Root
	cmd.Env = append(os.Environ(), cfg.Env...)
	if cfg.Network != nil {
		cmd.Env = append(cmd.Env, "RPC_URL="+cfg.Network.RPCURL)
	}

	start := time.Now()
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	defer func() { _ = ptyFile.Close() }()

	var raw bytes.Buffer
	// The pty read returns an error when the child exits; that is the
	// normal termination path, not a failure.
	_, _ = io.Copy(io.MultiWriter(r.out, &raw), ptyFile)

	result := &RunResult{
		Script:    cfg.ScriptPath,
		Success:   true,
		RawOutput: raw.Bytes(),
		Duration:  time.Since(start),
	}
	if err := cmd.Wait(); err != nil {
		result.Success = false
		result.Err = fmt.Errorf("script failed: %w", err)
	}

	r.log.Info("script finished", "script", cfg.ScriptPath,
		"success", result.Success, "duration", result.Duration)
	return result, nil
}

// command picks the toolchain invocation by project type.
func (r *Runner) command(cfg RunConfig) (string, []string) {
	if r.proj.Type == project.Hardhat {
		args := []string{"hardhat", "run", cfg.ScriptPath}
		if cfg.Network != nil {
			args = append(args, "--network", cfg.Network.Name)
		}
		return "npx", args
	}

	args := []string{"script", cfg.ScriptPath}
	if cfg.Network != nil {
		args = append(args, "--rpc-url", cfg.Network.RPCURL)
	}
	if cfg.Broadcast {
		args = append(args, "--broadcast")
	}
	return "forge", args
}
