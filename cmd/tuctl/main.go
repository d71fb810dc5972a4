// Command tuctl runs operator tasks against the TU Chat database.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	appMigrations "github.com/sembesalum/tu-chat-api/internal/app/migrations"
	appRepos "github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/bootstrap"
	"github.com/sembesalum/tu-chat-api/internal/config"
	"github.com/sembesalum/tu-chat-api/internal/db"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
	"github.com/sembesalum/tu-chat-api/internal/seed"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("tuctl failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tuctl",
		Usage: "maintenance commands for the TU Chat API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"TUCHAT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: withDatabase(migrate),
			},
			{
				Name:      "seed",
				Usage:     "load universities, campuses and courses from a YAML file",
				ArgsUsage: "[directory.yaml]",
				Action:    withDatabase(seedDirectory),
			},
			{
				Name:  "purge-otps",
				Usage: "delete password reset codes older than --older-than",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "older-than", Value: 24 * time.Hour, Usage: "age of the codes to delete"},
				},
				Action: withDatabase(purgeOTPs),
			},
			{
				Name:   "purge-tokens",
				Usage:  "delete expired auth tokens",
				Action: withDatabase(purgeTokens),
			},
		},
	}
}

type dbAction func(c *cli.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error

// withDatabase loads the configuration and opens the pool around a command
func withDatabase(action dbAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
		if err != nil {
			return err
		}
		database, err := db.Connect(c.Context, cfg, lgr)
		if err != nil {
			return err
		}
		defer database.Close()
		return action(c, cfg, database.Pool, lgr)
	}
}

func migrate(c *cli.Context, _ *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	applied, err := appMigrations.NewMigrator(pool, nil).Up(c.Context)
	if err != nil {
		return err
	}
	lgr.Info().Int("applied", applied).Msg("Migrations complete")
	return nil
}

func seedDirectory(c *cli.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	path := c.Args().First()
	if path == "" {
		path = cfg.Database.SeedFile
	}
	file, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	stats, err := seed.Apply(c.Context, appRepos.NewDirectoryRepository(pool), file, lgr)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "seeded %d universities, %d campuses, %d courses\n",
		stats.Universities, stats.Campuses, stats.Courses)
	return nil
}

func purgeOTPs(c *cli.Context, _ *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	cutoff := time.Now().Add(-c.Duration("older-than"))
	n, err := appRepos.NewOTPRepository(pool).DeleteOlderThan(c.Context, cutoff)
	if err != nil {
		return err
	}
	lgr.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("Purged password reset codes")
	return nil
}

func purgeTokens(c *cli.Context, _ *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	n, err := appRepos.NewTokenRepository(pool).DeleteExpired(c.Context, time.Now())
	if err != nil {
		return err
	}
	lgr.Info().Int64("deleted", n).Msg("Purged expired tokens")
	return nil
}
