package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"starwars/internal/app"
	"starwars/internal/config"
	"starwars/internal/database"
	"starwars/internal/logging"
	"starwars/internal/services"
	"starwars/pkg/rabbitmq"
)

// cliContext carries what every subcommand needs once the root command has
// loaded configuration.
type cliContext struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	cc := &cliContext{}

	rootCmd := &cobra.Command{
		Use:   "starwars",
		Short: "Star Wars catalogue API",
		Long: `starwars serves a REST API over users, characters, planets and the
favorites linking them, backed by PostgreSQL or a local sqlite file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			cc.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCommand(cc),
		newMigrateCommand(cc),
		newEventsCommand(cc),
	)
	return rootCmd
}

func newServeCommand(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := cc.cfg
			if cfg.JWTSecret == config.DefaultJWTSecret {
				log.Warn().Msg("JWT_SECRET is the development default; set it before exposing the API")
			}

			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if cfg.AutoMigrate {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}

			// A nil *Client must not become a non-nil interface.
			var publisher services.FavoriteEventPublisher
			if cfg.RabbitMQURL != "" {
				mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
				if err != nil {
					log.Warn().Err(err).Msg("RabbitMQ unavailable, favorite events disabled")
				} else {
					defer mqClient.Close()
					publisher = mqClient
				}
			}

			return listen(cmd, app.New(cfg, db, publisher), cfg.ListenAddr())
		},
	}
}

// listen serves until the command context is cancelled, then shuts down.
func listen(cmd *cobra.Command, server *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-cmd.Context().Done():
	}

	log.Info().Msg("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	log.Info().Msg("Server gracefully stopped")
	return nil
}

func newMigrateCommand(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(cc, func(cmd *cobra.Command, db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recently applied migration",
			Args:  cobra.NoArgs,
			RunE: withDB(cc, func(cmd *cobra.Command, db *gorm.DB) error {
				m, err := database.MigrateDown(db)
				if err != nil {
					return err
				}
				if m == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations to revert")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reverted %s %s\n", m.Version, m.Name)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(cc, func(cmd *cobra.Command, db *gorm.DB) error {
				applied, pending, err := database.Status(db)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT")
				for _, r := range applied {
					fmt.Fprintf(w, "%s\tapplied\t%s\n", r.Version, r.AppliedAt.Format("2006-01-02 15:04:05"))
				}
				for _, m := range pending {
					fmt.Fprintf(w, "%s\tpending\t-\n", m.Version)
				}
				return w.Flush()
			}),
		},
	)
	return cmd
}

func withDB(cc *cliContext, run func(*cobra.Command, *gorm.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		db, err := database.Open(cc.cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)
		return run(cmd, db)
	}
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}

func newEventsCommand(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Consume favorite events and log them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cc.cfg.RabbitMQURL == "" {
				return errors.New("RABBITMQ_URL is not set")
			}

			mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cc.cfg.RabbitMQURL})
			if err != nil {
				return err
			}
			defer mqClient.Close()

			done, err := mqClient.ConsumeFavoriteEvents(func(ev rabbitmq.FavoriteEvent) error {
				log.Info().
					Str("type", ev.Type).
					Uint("favorite_id", ev.FavoriteID).
					Uint("user_id", ev.UserID).
					Str("target", ev.Target).
					Uint("target_id", ev.TargetID).
					Time("occurred_at", ev.OccurredAt).
					Msg("Favorite event")
				return nil
			})
			if err != nil {
				return err
			}

			log.Info().Str("queue", rabbitmq.FavoriteQueue).Msg("Waiting for favorite events")
			select {
			case <-done:
				return errors.New("RabbitMQ delivery channel closed")
			case <-cmd.Context().Done():
				return nil
			}
		},
	}
}
