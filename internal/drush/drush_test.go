package drush_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantully/acquia-cli/internal/drush"
)

type recordedRun struct {
	alias string
	args  []string
}

// fakeRunner records every invocation and fails when the first argument
// matches failOn.
type fakeRunner struct {
	runs   []recordedRun
	failOn string
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, alias string, args ...string) error {
	r.runs = append(r.runs, recordedRun{alias: alias, args: args})
	if r.failOn != "" && args[0] == r.failOn {
		return r.err
	}
	return nil
}

func newPipeline(runner drush.Runner) drush.Pipeline {
	return drush.Pipeline{
		Runner:    runner,
		ConfigSet: "sync",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSyncRunsAllStepsInOrder(t *testing.T) {
	runner := &fakeRunner{}
	p := newPipeline(runner)

	require.NoError(t, p.Sync(context.Background(), "@myapp.stage"))

	want := [][]string{
		{"cr"},
		{"updb", "-y"},
		{"en", "config_split", "-y"},
		{"cim", "sync", "-y"},
		{"cr"},
	}
	require.Len(t, runner.runs, len(want))
	for i, run := range runner.runs {
		assert.Equal(t, "@myapp.stage", run.alias)
		assert.Equal(t, want[i], run.args)
	}
}

func TestSyncStopsAtFirstFailure(t *testing.T) {
	cause := errors.New("drush exited 1")
	runner := &fakeRunner{failOn: "en", err: cause}
	p := newPipeline(runner)

	err := p.Sync(context.Background(), "@myapp.dev")
	var syncErr *drush.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "config-split-enable", syncErr.Step)
	assert.ErrorIs(t, err, cause)

	// cr and updb ran, en failed, cim and the final cr never started.
	require.Len(t, runner.runs, 3)
	assert.Equal(t, []string{"en", "config_split", "-y"}, runner.runs[2].args)
}

func TestSyncUsesConfiguredSet(t *testing.T) {
	runner := &fakeRunner{}
	p := newPipeline(runner)
	p.ConfigSet = "prod"

	require.NoError(t, p.Sync(context.Background(), "@myapp.prod"))
	assert.Equal(t, []string{"cim", "prod", "-y"}, runner.runs[3].args)
}

func TestAlias(t *testing.T) {
	assert.Equal(t, "@myapp.stage", drush.Alias("myapp", "stage"))
	assert.Equal(t, "@shop.prod", drush.Alias("shop", "prod"))
}
