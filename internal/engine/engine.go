package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/briantully/acquia-cli/internal/config"
	"github.com/briantully/acquia-cli/internal/domain"
	"github.com/briantully/acquia-cli/internal/drush"
	"github.com/briantully/acquia-cli/internal/events"
)

// CloudAPI is the slice of the management API the orchestrator drives.
// *cloud.Client satisfies it.
type CloudAPI interface {
	ListEnvironments(ctx context.Context, appID string) ([]domain.Environment, error)
	ListDatabases(ctx context.Context, appID, envID string) ([]domain.Database, error)
	ListDomains(ctx context.Context, appID, envID string) ([]domain.Domain, error)
	ListTasks(ctx context.Context, appID string) ([]domain.Task, error)
	GetTask(ctx context.Context, appID string, taskID int64) (domain.Task, error)
	CreateDatabaseBackup(ctx context.Context, appID, envID, dbName string) (domain.Task, error)
	CopyDatabase(ctx context.Context, appID, dbName, fromEnvID, toEnvID string) (domain.Task, error)
	CopyFiles(ctx context.Context, appID, fromEnvID, toEnvID string) (domain.Task, error)
	PushCode(ctx context.Context, appID, envID, ref string) (domain.Task, error)
	PurgeCache(ctx context.Context, appID, envID, domainName string) (domain.Task, error)
}

// ConfigSyncer runs the configuration-sync pipeline for a site alias.
// drush.Pipeline satisfies it. Sync resolves to a plain error so the
// orchestrator never knows whether an outcome came from task polling or
// a subprocess exit.
type ConfigSyncer interface {
	Sync(ctx context.Context, alias string) error
}

// ErrNotFound marks a referenced entity absent from the fetched set.
var ErrNotFound = errors.New("not found")

// TaskFailedError indicates a submitted task completed in a non-success
// terminal state. Never retried.
type TaskFailedError struct {
	TaskID int64
	State  string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %d completed in state %q", e.TaskID, e.State)
}

// TaskTimeoutError indicates the polling bound was reached before the
// task completed. The task itself keeps running on the platform.
type TaskTimeoutError struct {
	TaskID   int64
	Attempts int
}

func (e *TaskTimeoutError) Error() string {
	return fmt.Sprintf("task %d still incomplete after %d polls", e.TaskID, e.Attempts)
}

// Engine sequences remote operations against the management API. One
// outstanding request at a time; every work-submitting call blocks on
// its task before the next dependent step starts.
type Engine struct {
	API    CloudAPI
	Sync   ConfigSyncer
	Events *events.Writer
	Config *config.Config
	Logger *slog.Logger
}

func New(api CloudAPI, sync ConfigSyncer, cfg *config.Config, logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return Engine{
		API:    api,
		Sync:   sync,
		Config: cfg,
		Logger: logger,
	}
}

// WaitForTask blocks until the submitted task completes, re-reading it
// at the configured interval. A completed task in any state other than
// "done" is a failure carrying the observed state. The attempt bound
// comes from config; zero polls forever.
func (e Engine) WaitForTask(ctx context.Context, appID string, task domain.Task) error {
	interval := e.Config.PollInterval()
	maxAttempts := e.Config.Tasks.MaxAttempts
	for attempt := 1; ; attempt++ {
		t, err := e.API.GetTask(ctx, appID, task.ID)
		if err != nil {
			return fmt.Errorf("read task %d: %w", task.ID, err)
		}
		if t.Completed {
			if t.Succeeded() {
				return nil
			}
			return &TaskFailedError{TaskID: t.ID, State: t.State}
		}
		if maxAttempts > 0 && attempt >= maxAttempts {
			return &TaskTimeoutError{TaskID: t.ID, Attempts: attempt}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// BackupDatabase backs up one database and waits for completion.
func (e Engine) BackupDatabase(ctx context.Context, appID string, env domain.Environment, dbName string) error {
	e.Logger.Info("backing up database", "environment", env.Name, "database", dbName)
	task, err := e.API.CreateDatabaseBackup(ctx, appID, env.ID, dbName)
	if err != nil {
		return fmt.Errorf("backup %s in %s: %w", dbName, env.Name, err)
	}
	if err := e.WaitForTask(ctx, appID, task); err != nil {
		return fmt.Errorf("backup %s in %s: %w", dbName, env.Name, err)
	}
	return nil
}

// CopyDatabase overwrites to's copy of the database with from's and
// waits for completion.
func (e Engine) CopyDatabase(ctx context.Context, appID, dbName string, from, to domain.Environment) error {
	e.Logger.Info("copying database", "database", dbName, "from", from.Name, "to", to.Name)
	task, err := e.API.CopyDatabase(ctx, appID, dbName, from.ID, to.ID)
	if err != nil {
		return fmt.Errorf("copy %s from %s to %s: %w", dbName, from.Name, to.Name, err)
	}
	if err := e.WaitForTask(ctx, appID, task); err != nil {
		return fmt.Errorf("copy %s from %s to %s: %w", dbName, from.Name, to.Name, err)
	}
	return nil
}

// CopyFiles overwrites to's managed file tree with from's and waits for
// completion.
func (e Engine) CopyFiles(ctx context.Context, appID string, from, to domain.Environment) error {
	e.Logger.Info("copying files", "from", from.Name, "to", to.Name)
	task, err := e.API.CopyFiles(ctx, appID, from.ID, to.ID)
	if err != nil {
		return fmt.Errorf("copy files from %s to %s: %w", from.Name, to.Name, err)
	}
	if err := e.WaitForTask(ctx, appID, task); err != nil {
		return fmt.Errorf("copy files from %s to %s: %w", from.Name, to.Name, err)
	}
	return nil
}

// PushCode deploys a branch or tag to an environment and waits for
// completion.
func (e Engine) PushCode(ctx context.Context, appID string, env domain.Environment, ref string) error {
	e.Logger.Info("pushing code", "environment", env.Name, "ref", ref)
	task, err := e.API.PushCode(ctx, appID, env.ID, ref)
	if err != nil {
		return fmt.Errorf("push %s to %s: %w", ref, env.Name, err)
	}
	if err := e.WaitForTask(ctx, appID, task); err != nil {
		return fmt.Errorf("push %s to %s: %w", ref, env.Name, err)
	}
	return nil
}

// UpdateConfiguration runs the drush pipeline for an environment. Its
// completion is synchronous: the pipeline blocks until its own steps
// exit, not via task polling.
func (e Engine) UpdateConfiguration(ctx context.Context, app domain.Application, env domain.Environment) error {
	alias := drush.Alias(app.Name, env.Name)
	e.Logger.Info("updating configuration", "environment", env.Name, "alias", alias)
	if err := e.Sync.Sync(ctx, alias); err != nil {
		return fmt.Errorf("update configuration in %s: %w", env.Name, err)
	}
	return nil
}

// PurgeCache purges one domain's cache and waits for completion.
func (e Engine) PurgeCache(ctx context.Context, appID string, env domain.Environment, domainName string) error {
	e.Logger.Info("purging cache", "environment", env.Name, "domain", domainName)
	task, err := e.API.PurgeCache(ctx, appID, env.ID, domainName)
	if err != nil {
		return fmt.Errorf("purge %s in %s: %w", domainName, env.Name, err)
	}
	if err := e.WaitForTask(ctx, appID, task); err != nil {
		return fmt.Errorf("purge %s in %s: %w", domainName, env.Name, err)
	}
	return nil
}

// Deploy runs the full deployment workflow for one environment: back up
// every database, push the code reference, synchronize configuration,
// purge every domain. Any step failing aborts the remaining steps.
func (e Engine) Deploy(ctx context.Context, app domain.Application, env domain.Environment, ref string) error {
	e.record(ctx, "deploy.start", app.UUID, env.Name, events.Payload{"ref": ref})
	if err := e.deploy(ctx, app, env, ref); err != nil {
		e.record(ctx, "deploy.fail", app.UUID, env.Name, events.Payload{"ref": ref, "error": err.Error()})
		return fmt.Errorf("deploy %s to %s: %w", ref, env.Name, err)
	}
	e.record(ctx, "deploy.finish", app.UUID, env.Name, events.Payload{"ref": ref})
	return nil
}

func (e Engine) deploy(ctx context.Context, app domain.Application, env domain.Environment, ref string) error {
	return runSteps(
		func() error { return e.BackupAllDatabases(ctx, app.UUID, env) },
		func() error { return e.PushCode(ctx, app.UUID, env, ref) },
		func() error { return e.UpdateConfiguration(ctx, app, env) },
		func() error { return e.PurgeAllDomains(ctx, app.UUID, env) },
	)
}

// Prepare copies databases and files from one environment into another.
// Both sides of every database are backed up before its copy, bounding
// the blast radius of a failed or wrong-direction copy. Each database
// is fully processed before the next one; files are copied once at the
// end.
func (e Engine) Prepare(ctx context.Context, app domain.Application, from, to domain.Environment) error {
	e.record(ctx, "prepare.start", app.UUID, to.Name, events.Payload{"source": from.Name})
	if err := e.prepare(ctx, app, from, to); err != nil {
		e.record(ctx, "prepare.fail", app.UUID, to.Name, events.Payload{"source": from.Name, "error": err.Error()})
		return fmt.Errorf("prepare %s from %s: %w", to.Name, from.Name, err)
	}
	e.record(ctx, "prepare.finish", app.UUID, to.Name, events.Payload{"source": from.Name})
	return nil
}

func (e Engine) prepare(ctx context.Context, app domain.Application, from, to domain.Environment) error {
	dbs, err := e.API.ListDatabases(ctx, app.UUID, from.ID)
	if err != nil {
		return fmt.Errorf("list databases in %s: %w", from.Name, err)
	}
	for _, db := range dbs {
		if err := runSteps(
			func() error { return e.BackupDatabase(ctx, app.UUID, from, db.Name) },
			func() error { return e.BackupDatabase(ctx, app.UUID, to, db.Name) },
			func() error { return e.CopyDatabase(ctx, app.UUID, db.Name, from, to) },
		); err != nil {
			return err
		}
	}
	return e.CopyFiles(ctx, app.UUID, from, to)
}

// UpdateConfig runs the configuration-sync workflow alone.
func (e Engine) UpdateConfig(ctx context.Context, app domain.Application, env domain.Environment) error {
	e.record(ctx, "config.start", app.UUID, env.Name, nil)
	if err := e.UpdateConfiguration(ctx, app, env); err != nil {
		e.record(ctx, "config.fail", app.UUID, env.Name, events.Payload{"error": err.Error()})
		return err
	}
	e.record(ctx, "config.finish", app.UUID, env.Name, nil)
	return nil
}

// ForEachNonProd applies op to every non-production environment in
// platform order. Unlike the sequencing inside one environment, the
// fan-out is best effort: a failing environment is recorded and the
// remaining environments are still attempted.
func (e Engine) ForEachNonProd(ctx context.Context, app domain.Application, op func(domain.Environment) error) error {
	envs, err := e.API.ListEnvironments(ctx, app.UUID)
	if err != nil {
		return fmt.Errorf("list environments: %w", err)
	}
	var errs []error
	for _, env := range envs {
		if env.Kind == domain.Production {
			continue
		}
		if err := op(env); err != nil {
			e.Logger.Error("environment operation failed", "environment", env.Name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", env.Name, err))
		}
	}
	return errors.Join(errs...)
}

// DeployAll deploys a code reference to every non-production
// environment.
func (e Engine) DeployAll(ctx context.Context, app domain.Application, ref string) error {
	return e.ForEachNonProd(ctx, app, func(env domain.Environment) error {
		return e.Deploy(ctx, app, env, ref)
	})
}

// PrepareAll prepares every non-production environment from the source
// environment. The source itself is skipped.
func (e Engine) PrepareAll(ctx context.Context, app domain.Application, from domain.Environment) error {
	return e.ForEachNonProd(ctx, app, func(env domain.Environment) error {
		if env.ID == from.ID {
			return nil
		}
		return e.Prepare(ctx, app, from, env)
	})
}

// UpdateConfigAll runs the configuration-sync workflow on every
// non-production environment.
func (e Engine) UpdateConfigAll(ctx context.Context, app domain.Application) error {
	return e.ForEachNonProd(ctx, app, func(env domain.Environment) error {
		return e.UpdateConfig(ctx, app, env)
	})
}

// FindEnvironment resolves an environment by name.
func (e Engine) FindEnvironment(ctx context.Context, appID, name string) (domain.Environment, error) {
	envs, err := e.API.ListEnvironments(ctx, appID)
	if err != nil {
		return domain.Environment{}, fmt.Errorf("list environments: %w", err)
	}
	for _, env := range envs {
		if env.Name == name {
			return env, nil
		}
	}
	return domain.Environment{}, fmt.Errorf("environment %s: %w", name, ErrNotFound)
}

// ProductionEnvironment resolves the application's production
// environment.
func (e Engine) ProductionEnvironment(ctx context.Context, appID string) (domain.Environment, error) {
	envs, err := e.API.ListEnvironments(ctx, appID)
	if err != nil {
		return domain.Environment{}, fmt.Errorf("list environments: %w", err)
	}
	for _, env := range envs {
		if env.Kind == domain.Production {
			return env, nil
		}
	}
	return domain.Environment{}, fmt.Errorf("production environment: %w", ErrNotFound)
}

// TaskInfo looks a task up in the application's fetched task set.
func (e Engine) TaskInfo(ctx context.Context, appID string, taskID int64) (domain.Task, error) {
	tasks, err := e.API.ListTasks(ctx, appID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("list tasks: %w", err)
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("task %d: %w", taskID, ErrNotFound)
}

// runSteps executes steps in order and aborts at the first failure.
// This is the inside-one-environment policy; ForEachNonProd is its
// collect-errors counterpart across environments.
func runSteps(steps ...func() error) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

// BackupAllDatabases backs up every database in the environment, in
// platform order, stopping at the first failure.
func (e Engine) BackupAllDatabases(ctx context.Context, appID string, env domain.Environment) error {
	dbs, err := e.API.ListDatabases(ctx, appID, env.ID)
	if err != nil {
		return fmt.Errorf("list databases in %s: %w", env.Name, err)
	}
	for _, db := range dbs {
		if err := e.BackupDatabase(ctx, appID, env, db.Name); err != nil {
			return err
		}
	}
	return nil
}

// PurgeAllDomains purges every domain in the environment, in platform
// order, stopping at the first failure.
func (e Engine) PurgeAllDomains(ctx context.Context, appID string, env domain.Environment) error {
	domains, err := e.API.ListDomains(ctx, appID, env.ID)
	if err != nil {
		return fmt.Errorf("list domains in %s: %w", env.Name, err)
	}
	for _, d := range domains {
		if err := e.PurgeCache(ctx, appID, env, d.Name); err != nil {
			return err
		}
	}
	return nil
}

// record appends an audit event; audit failures never fail a workflow.
func (e Engine) record(ctx context.Context, evtType, appID, envName string, payload events.Payload) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Append(ctx, evtType, appID, envName, payload); err != nil {
		e.Logger.Warn("audit event not recorded", "type", evtType, "error", err)
	}
}
