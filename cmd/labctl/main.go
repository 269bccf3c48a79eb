package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/linskybing/robolab-go/internal/app"
	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/config/db"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/scheduler"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "labctl",
		Usage: "Robotics lab review backend administration",
		Commands: []*cli.Command{
			migrateCommand(),
			accountsCommand(),
			profilesCommand(),
			mailCommand(),
			sessionsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

// withApp loads configuration, builds the runtime and closes it after fn.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logFile, w := config.InitLogging(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}
	a, err := app.Build(ctx, cfg, w)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.DriverMemory {
				fmt.Println("memory store has no migrations")
				return nil
			}
			gdb, err := db.Open(cfg.Store, os.Stderr)
			if err != nil {
				return err
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			if err := db.Migrate(ctx, gdb, cfg.Store.Driver); err != nil {
				return err
			}
			fmt.Printf("migrations applied (%s)\n", cfg.Store.Driver)
			return nil
		},
	}
}

func accountsCommand() *cli.Command {
	return &cli.Command{
		Name:  "accounts",
		Usage: "Manage sign-in accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Usage: "also grant this role"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						acct, err := a.Services.Auth.CreateAccount(ctx, c.String("email"), c.String("password"))
						if err != nil {
							return err
						}
						fmt.Printf("created account %s (%s)\n", acct.Email, acct.ID)
						if role := c.String("role"); role != "" {
							prof, err := a.Services.Access.GrantRole(ctx, acct, profile.Role(role), nil)
							if err != nil {
								return err
							}
							fmt.Printf("granted %s\n", prof.Role)
						}
						return nil
					})
				},
			},
			{
				Name:  "passwd",
				Usage: "Reset an account password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						if err := a.Services.Auth.ResetPassword(ctx, c.String("email"), c.String("password")); err != nil {
							return err
						}
						fmt.Println("password updated")
						return nil
					})
				},
			},
		},
	}
}

func profilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "Manage staff roles",
		Commands: []*cli.Command{
			{
				Name:  "grant",
				Usage: "Set the role of an existing account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "role", Required: true, Usage: "super_admin, admin, faculty or view_only"},
					&cli.BoolFlag{Name: "notify", Usage: "email this profile about new submissions"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						acct, err := a.Services.Auth.GetAccountByEmail(ctx, c.String("email"))
						if err != nil {
							return fmt.Errorf("account %s: %w", c.String("email"), err)
						}
						var notify *bool
						if c.IsSet("notify") {
							v := c.Bool("notify")
							notify = &v
						}
						prof, err := a.Services.Access.GrantRole(ctx, acct, profile.Role(c.String("role")), notify)
						if err != nil {
							return err
						}
						fmt.Printf("%s is now %s (new-project alerts: %t)\n", prof.Email, prof.Role, prof.EmailOnNewProject)
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "List profiles",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						profiles, err := a.Services.Access.ListProfiles(ctx)
						if err != nil {
							return err
						}
						if c.Bool("json") {
							return printJSON(os.Stdout, profiles)
						}
						tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
						fmt.Fprintln(tw, "EMAIL\tROLE\tALERTS\tID")
						for _, p := range profiles {
							fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", p.Email, p.Role, p.EmailOnNewProject, p.ID)
						}
						return tw.Flush()
					})
				},
			},
		},
	}
}

func mailCommand() *cli.Command {
	return &cli.Command{
		Name:  "mail",
		Usage: "Operate the notification queue",
		Commands: []*cli.Command{
			{
				Name:  "drain",
				Usage: "Run one delivery pass",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						res, err := a.Services.Delivery.DrainOnce(ctx)
						if err != nil {
							return err
						}
						if c.Bool("json") {
							return printJSON(os.Stdout, res)
						}
						fmt.Printf("sent %d, retried %d, failed %d, skipped %d, reset %d\n",
							res.Sent, res.Retried, res.Failed, res.Skipped, res.Reset)
						return nil
					})
				},
			},
			{
				Name:  "worker",
				Usage: "Run the delivery worker until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "schedule", Usage: "cron spec, overrides MAIL_SCHEDULE"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						spec := a.Config.Mail.Schedule
						if c.IsSet("schedule") {
							spec = c.String("schedule")
						}
						return scheduler.NewWorker(a.Services.Delivery, a.Services.Auth, spec).Start(ctx)
					})
				},
			},
		},
	}
}

func sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Session maintenance",
		Commands: []*cli.Command{
			{
				Name:  "cleanup",
				Usage: "Delete expired sessions",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						n, err := a.Services.Auth.CleanupExpiredSessions(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("removed %d expired sessions\n", n)
						return nil
					})
				},
			},
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
