package drush

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Runner executes one drush invocation against a site alias.
type Runner interface {
	Run(ctx context.Context, alias string, args ...string) error
}

// ExecRunner runs the drush binary as a subprocess.
type ExecRunner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, alias string, args ...string) error {
	bin := r.Binary
	if bin == "" {
		bin = "drush"
	}
	cmd := exec.CommandContext(ctx, bin, append([]string{alias}, args...)...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// SyncError reports which pipeline step failed.
type SyncError struct {
	Step string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("config sync failed at %s: %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Pipeline brings an environment's configuration and database schema in
// line with the deployed code: cache rebuild, database updates, enable
// the config overlay, import the configuration set, cache rebuild
// again. Steps run in order and stop at the first failure.
type Pipeline struct {
	Runner    Runner
	ConfigSet string
	Logger    *slog.Logger
}

type step struct {
	name string
	args []string
}

// Sync runs the full pipeline against a site alias.
func (p Pipeline) Sync(ctx context.Context, alias string) error {
	configSet := p.ConfigSet
	if configSet == "" {
		configSet = "sync"
	}
	steps := []step{
		{"cache-rebuild", []string{"cr"}},
		{"database-updates", []string{"updb", "-y"}},
		{"config-split-enable", []string{"en", "config_split", "-y"}},
		{"config-import", []string{"cim", configSet, "-y"}},
		{"cache-rebuild", []string{"cr"}},
	}
	for _, s := range steps {
		if p.Logger != nil {
			p.Logger.Info("drush step", "alias", alias, "step", s.name)
		}
		if err := p.Runner.Run(ctx, alias, s.args...); err != nil {
			return &SyncError{Step: s.name, Err: err}
		}
	}
	return nil
}

// Alias builds the drush site alias for an application environment.
func Alias(appName, envName string) string {
	return fmt.Sprintf("@%s.%s", appName, envName)
}
