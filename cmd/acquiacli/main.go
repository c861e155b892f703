package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/briantully/acquia-cli/internal/app"
	"github.com/briantully/acquia-cli/internal/cloud"
	"github.com/briantully/acquia-cli/internal/config"
	"github.com/briantully/acquia-cli/internal/db"
	"github.com/briantully/acquia-cli/internal/domain"
	"github.com/briantully/acquia-cli/internal/drush"
	"github.com/briantully/acquia-cli/internal/engine"
	"github.com/briantully/acquia-cli/internal/engine/guard"
	"github.com/briantully/acquia-cli/internal/events"
	"github.com/briantully/acquia-cli/internal/migrate"
	"github.com/briantully/acquia-cli/internal/repo"
)

var rootCmd = &cobra.Command{
	Use:   "acquiacli",
	Short: "Acquia Cloud deployment CLI",
	Long: `acquiacli drives multi-step deployments against the Acquia Cloud
management API: database backups, code pushes, configuration sync, and
cache purges, sequenced as one operation per environment.

Commands that change production live under "prod" and always ask for
confirmation. Commands under "preprod" refuse to target the production
environment.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("ACQUIACLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("config-dir", defaultConfigDir(), "config directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Bool("yes", false, "skip confirmation prompts")
	_ = viper.BindPFlag("config-dir", rootCmd.PersistentFlags().Lookup("config-dir"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("yes", rootCmd.PersistentFlags().Lookup("yes"))
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acquiacli"
	}
	return filepath.Join(home, ".acquiacli")
}

func registerCommands() {
	rootCmd.AddCommand(applicationCmd())
	rootCmd.AddCommand(environmentCmd())
	rootCmd.AddCommand(databaseCmd())
	rootCmd.AddCommand(domainCmd())
	rootCmd.AddCommand(serverCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(prodCmd())
	rootCmd.AddCommand(preprodCmd())
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(logCmd())
}

func applicationCmd() *cobra.Command {
	a := &cobra.Command{Use: "application", Short: "Inspect applications"}
	a.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				apps, err := c.ListApplications(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(apps)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"UUID", "Name", "Title"})
				for _, a := range apps {
					tw.AppendRow(table.Row{a.UUID, a.Name, a.Title})
				}
				tw.Render()
				return nil
			})
		},
	})
	return a
}

func environmentCmd() *cobra.Command {
	e := &cobra.Command{Use: "environment", Short: "Inspect environments"}
	e.AddCommand(&cobra.Command{
		Use:   "list <app>",
		Short: "List an application's environments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				envs, err := c.ListEnvironments(ctx, a.UUID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(envs)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Kind", "VCS Path"})
				for _, env := range envs {
					tw.AppendRow(table.Row{env.ID, env.Name, env.Kind, env.VCSPath})
				}
				tw.Render()
				return nil
			})
		},
	})
	return e
}

func databaseCmd() *cobra.Command {
	d := &cobra.Command{Use: "database", Short: "Inspect and back up databases"}
	d.AddCommand(&cobra.Command{
		Use:   "list <app> <env>",
		Short: "List an environment's databases",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				dbs, err := c.ListDatabases(ctx, a.UUID, env.ID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(dbs)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Name", "Instance"})
				for _, db := range dbs {
					tw.AppendRow(table.Row{db.Name, db.InstanceName})
				}
				tw.Render()
				return nil
			})
		},
	})
	d.AddCommand(&cobra.Command{
		Use:   "backup <app> <env>",
		Short: "Back up every database in an environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				if err := e.BackupAllDatabases(ctx, a.UUID, env); err != nil {
					return err
				}
				fmt.Printf("Backed up all databases in %s\n", env.Name)
				return nil
			})
		},
	})
	return d
}

func domainCmd() *cobra.Command {
	d := &cobra.Command{Use: "domain", Short: "Inspect domains"}
	d.AddCommand(&cobra.Command{
		Use:   "list <app> <env>",
		Short: "List an environment's domains",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				domains, err := c.ListDomains(ctx, a.UUID, env.ID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(domains)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Domain"})
				for _, dom := range domains {
					tw.AppendRow(table.Row{dom.Name})
				}
				tw.Render()
				return nil
			})
		},
	})
	return d
}

func serverCmd() *cobra.Command {
	s := &cobra.Command{Use: "server", Short: "Inspect servers"}
	s.AddCommand(&cobra.Command{
		Use:   "list <app> <env>",
		Short: "List an environment's servers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				servers, err := c.ListServers(ctx, a.UUID, env.ID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(servers)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Name", "FQDN", "Role"})
				for _, srv := range servers {
					tw.AppendRow(table.Row{srv.Name, srv.FQDN, srv.Role})
				}
				tw.Render()
				return nil
			})
		},
	})
	return s
}

func taskCmd() *cobra.Command {
	t := &cobra.Command{Use: "task", Short: "Inspect platform tasks"}
	t.AddCommand(&cobra.Command{
		Use:   "list <app>",
		Short: "List an application's recent tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *cloud.Client, cfg *config.Config) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				tasks, err := c.ListTasks(ctx, a.UUID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(tasks)
				}
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Description", "State", "Created", "Finished"})
				for _, task := range tasks {
					tw.AppendRow(table.Row{
						task.ID,
						task.Description,
						task.State,
						formatTime(task.CreatedAt, loc, cfg.Report.DateFormat),
						formatTime(task.FinishedAt, loc, cfg.Report.DateFormat),
					})
				}
				tw.Render()
				return nil
			})
		},
	})
	t.AddCommand(&cobra.Command{
		Use:   "info <app> <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[1])
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				task, err := e.TaskInfo(ctx, a.UUID, taskID)
				if err != nil {
					return err
				}
				return printJSONOrPlain(task)
			})
		},
	})
	return t
}

func prodCmd() *cobra.Command {
	p := &cobra.Command{
		Use:   "prod",
		Short: "Operate on the production environment (asks for confirmation)",
	}
	p.AddCommand(prodDeployCmd())
	p.AddCommand(prodConfigCmd())
	p.AddCommand(prodPurgeCmd())
	return p
}

func prodDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <app> <ref>",
		Short: "Deploy a branch or tag to production",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := args[1]
			ok, err := confirmer().Confirm(fmt.Sprintf("Deploy %s to the production environment of %s. This overwrites production", ref, args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted; no changes made.")
				return nil
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				env, err := e.ProductionEnvironment(ctx, a.UUID)
				if err != nil {
					return err
				}
				if err := e.Deploy(ctx, a, env, ref); err != nil {
					return err
				}
				fmt.Printf("Deployed %s to %s\n", ref, env.Name)
				return nil
			})
		},
	}
}

func prodConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <app>",
		Short: "Run the configuration-sync pipeline on production",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmer().Confirm(fmt.Sprintf("Overwrite the active configuration of %s production", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted; no changes made.")
				return nil
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				env, err := e.ProductionEnvironment(ctx, a.UUID)
				if err != nil {
					return err
				}
				if err := e.UpdateConfig(ctx, a, env); err != nil {
					return err
				}
				fmt.Printf("Configuration updated in %s\n", env.Name)
				return nil
			})
		},
	}
}

func prodPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <app>",
		Short: "Purge every domain cache on production",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmer().Confirm(fmt.Sprintf("Purge every domain cache of %s production", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted; no changes made.")
				return nil
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				env, err := e.ProductionEnvironment(ctx, a.UUID)
				if err != nil {
					return err
				}
				if err := e.PurgeAllDomains(ctx, a.UUID, env); err != nil {
					return err
				}
				fmt.Printf("Purged all domains in %s\n", env.Name)
				return nil
			})
		},
	}
}

func preprodCmd() *cobra.Command {
	p := &cobra.Command{
		Use:   "preprod",
		Short: "Operate on non-production environments",
	}
	p.AddCommand(preprodDeployCmd())
	p.AddCommand(preprodDeployAllCmd())
	p.AddCommand(preprodPrepareCmd())
	p.AddCommand(preprodPrepareAllCmd())
	p.AddCommand(preprodConfigCmd())
	p.AddCommand(preprodConfigAllCmd())
	p.AddCommand(preprodPurgeCmd())
	return p
}

func preprodDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <app> <env> <ref>",
		Short: "Deploy a branch or tag to one non-production environment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guard.RequireNonProd("preprod deploy", args[1]); err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				if err := e.Deploy(ctx, a, env, args[2]); err != nil {
					return err
				}
				fmt.Printf("Deployed %s to %s\n", args[2], env.Name)
				return nil
			})
		},
	}
}

func preprodDeployAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy-all <app> <ref>",
		Short: "Deploy a branch or tag to every non-production environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				if err := e.DeployAll(ctx, a, args[1]); err != nil {
					return err
				}
				fmt.Printf("Deployed %s to all non-production environments\n", args[1])
				return nil
			})
		},
	}
}

func preprodPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare <app> <from> <to>",
		Short: "Copy databases and files from one environment into another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guard.RequireNonProd("preprod prepare", args[2]); err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, from, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				to, err := e.FindEnvironment(ctx, a.UUID, args[2])
				if err != nil {
					return err
				}
				if err := e.Prepare(ctx, a, from, to); err != nil {
					return err
				}
				fmt.Printf("Prepared %s from %s\n", to.Name, from.Name)
				return nil
			})
		},
	}
}

func preprodPrepareAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare-all <app> <from>",
		Short: "Prepare every non-production environment from a source environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, from, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				if err := e.PrepareAll(ctx, a, from); err != nil {
					return err
				}
				fmt.Printf("Prepared all non-production environments from %s\n", from.Name)
				return nil
			})
		},
	}
}

func preprodConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <app> <env>",
		Short: "Run the configuration-sync pipeline on one non-production environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guard.RequireNonProd("preprod config", args[1]); err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				if err := e.UpdateConfig(ctx, a, env); err != nil {
					return err
				}
				fmt.Printf("Configuration updated in %s\n", env.Name)
				return nil
			})
		},
	}
}

func preprodConfigAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-all <app>",
		Short: "Run the configuration-sync pipeline on every non-production environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, err := app.Resolve(ctx, c, args[0])
				if err != nil {
					return err
				}
				if err := e.UpdateConfigAll(ctx, a); err != nil {
					return err
				}
				fmt.Println("Configuration updated in all non-production environments")
				return nil
			})
		},
	}
}

func preprodPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <app> <env>",
		Short: "Purge every domain cache on one non-production environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guard.RequireNonProd("preprod purge", args[1]); err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine, c *cloud.Client) error {
				a, env, err := resolveEnv(ctx, c, args[0], args[1])
				if err != nil {
					return err
				}
				if err := e.PurgeAllDomains(ctx, a.UUID, env); err != nil {
					return err
				}
				fmt.Printf("Purged all domains in %s\n", env.Name)
				return nil
			})
		},
	}
}

func authCmd() *cobra.Command {
	a := &cobra.Command{Use: "auth", Short: "Manage API credentials"}
	a.AddCommand(authLoginCmd())
	return a
}

func authLoginCmd() *cobra.Command {
	var endpoint, key, secret string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store API credentials in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := viper.GetString("config-dir")
			cfg, err := config.LoadOptional(dir)
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.API.Endpoint = endpoint
			}
			if key == "" {
				return fmt.Errorf("--key is required")
			}
			cfg.API.Key = key
			if secret == "" {
				fmt.Print("API secret: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Print("\n")
				if err != nil {
					return fmt.Errorf("read secret: %w", err)
				}
				secret = string(raw)
			}
			cfg.API.Secret = secret
			if err := config.Save(dir, cfg); err != nil {
				return err
			}
			fmt.Printf("Credentials saved to %s\n", config.Path(dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "API endpoint override")
	cmd.Flags().StringVar(&key, "key", "", "API key")
	cmd.Flags().StringVar(&secret, "secret", "", "API secret (supply to avoid prompt)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func logCmd() *cobra.Command {
	l := &cobra.Command{Use: "log", Short: "Local audit log of orchestrated operations"}
	l.AddCommand(logTailCmd())
	return l
}

func logTailCmd() *cobra.Command {
	var n int
	var f repo.EventFilters
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent audit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := viper.GetString("config-dir")
			conn, err := db.Open(db.Config{Dir: dir})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			evts, err := repo.Repo{DB: conn}.LatestEvents(cmd.Context(), n, f)
			if err != nil {
				return err
			}
			return printJSONOrPlain(evts)
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&f.Type, "type", "", "event type filter")
	cmd.Flags().StringVar(&f.AppID, "app", "", "application uuid filter")
	cmd.Flags().StringVar(&f.Environment, "env", "", "environment filter")
	return cmd
}

// --- helpers ---

func withClient(ctx context.Context, fn func(context.Context, *cloud.Client, *config.Config) error) error {
	cfg, err := config.Load(viper.GetString("config-dir"))
	if err != nil {
		return err
	}
	return fn(ctx, cloud.New(cfg.API.Endpoint, cfg.API.Key, cfg.API.Secret), cfg)
}

func withEngine(ctx context.Context, fn func(context.Context, engine.Engine, *cloud.Client) error) error {
	dir := viper.GetString("config-dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	client := cloud.New(cfg.API.Endpoint, cfg.API.Key, cfg.API.Secret)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	pipeline := drush.Pipeline{
		Runner:    drush.ExecRunner{Binary: cfg.Drush.Binary},
		ConfigSet: cfg.Drush.ConfigSet,
		Logger:    logger,
	}
	conn, err := db.Open(db.Config{Dir: dir})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(conn); err != nil {
		return err
	}
	e := engine.New(client, pipeline, cfg, logger)
	e.Events = &events.Writer{DB: conn}
	return fn(ctx, e, client)
}

func resolveEnv(ctx context.Context, c *cloud.Client, appRef, envName string) (domain.Application, domain.Environment, error) {
	a, err := app.Resolve(ctx, c, appRef)
	if err != nil {
		return domain.Application{}, domain.Environment{}, err
	}
	envs, err := c.ListEnvironments(ctx, a.UUID)
	if err != nil {
		return domain.Application{}, domain.Environment{}, err
	}
	for _, env := range envs {
		if env.Name == envName {
			return a, env, nil
		}
	}
	return domain.Application{}, domain.Environment{}, fmt.Errorf("environment %s not found in %s", envName, a.Name)
}

func confirmer() guard.Confirmer {
	if viper.GetBool("yes") {
		return guard.AlwaysConfirm{}
	}
	return guard.TerminalConfirmer{In: os.Stdin, Out: os.Stdout}
}

func printJSONOrPlain(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(epoch int64, loc *time.Location, layout string) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).In(loc).Format(layout)
}
