package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/careline/careline/internal/config"
	"github.com/careline/careline/internal/domain/calldoc"
	"github.com/careline/careline/internal/domain/chat"
	"github.com/careline/careline/internal/domain/concern"
	"github.com/careline/careline/internal/domain/identity"
	"github.com/careline/careline/internal/domain/image"
	"github.com/careline/careline/internal/platform/auth"
	"github.com/careline/careline/internal/platform/blobstore"
	"github.com/careline/careline/internal/platform/db"
	"github.com/careline/careline/internal/platform/middleware"
	"github.com/careline/careline/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careline-server",
		Short: "Patient concern tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsePostgres() {
				return fmt.Errorf("DATABASE_URL is not set; migrations only apply to the Postgres backend")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsePostgres() {
				return fmt.Errorf("DATABASE_URL is not set; migrations only apply to the Postgres backend")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with synthetic demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("concerns")
			seed, _ := cmd.Flags().GetInt64("seed")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsePostgres() {
				return fmt.Errorf("DATABASE_URL is not set; the in-memory store cannot be seeded from the CLI, use POST /api/v1/sandbox/seed on a running dev server")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			seeder := sandbox.NewSeeder(
				concern.NewService(concern.NewPGRepo(pool)),
				calldoc.NewService(calldoc.NewPGRepo(pool)),
				chat.NewService(chat.NewPGRepo(pool)),
			)
			seedCfg := sandbox.DefaultSeedConfig()
			if count > 0 {
				seedCfg.ConcernCount = count
			}
			seedCfg.Seed = seed

			result, err := seeder.Seed(ctx, seedCfg)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Printf("Seeded %d concerns, %d call docs, %d chat messages.\n",
				result.Concerns, result.CallDocs, result.ChatMessages)
			return nil
		},
	}
	cmd.Flags().Int("concerns", 0, "Number of concerns to generate (0 = default)")
	cmd.Flags().Int64("seed", 1, "Random seed for reproducible output")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		pool        *pgxpool.Pool
		concernRepo concern.Repository
		calldocRepo calldoc.Repository
		chatRepo    chat.Repository
		userRepo    identity.Repository
		imageRepo   image.Repository
	)
	if cfg.UsePostgres() {
		pool, err = db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		concernRepo = concern.NewPGRepo(pool)
		calldocRepo = calldoc.NewPGRepo(pool)
		chatRepo = chat.NewPGRepo(pool)
		userRepo = identity.NewPGRepo(pool)
		imageRepo = image.NewPGRepo(pool)
	} else {
		logger.Info().Msg("DATABASE_URL not set, using in-memory storage")
		concernRepo = concern.NewMemRepo()
		calldocRepo = calldoc.NewMemRepo()
		chatRepo = chat.NewMemRepo()
		userRepo = identity.NewMemRepo()
		imageRepo = image.NewMemRepo()
	}

	store, err := blobstore.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload store")
	}
	logger.Info().Str("dir", store.Root()).Msg("upload store ready")

	tokens := auth.NewTokenIssuer(cfg.AuthSecret, time.Duration(cfg.AuthTokenTTLMin)*time.Minute)

	concernSvc := concern.NewService(concernRepo)
	calldocSvc := calldoc.NewService(calldocRepo)
	chatSvc := chat.NewService(chatRepo)
	identitySvc := identity.NewService(userRepo, tokens)
	imageSvc := image.NewService(imageRepo, store, cfg.MaxUploadBytes())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")
	concern.NewHandler(concernSvc).RegisterRoutes(apiV1)
	calldoc.NewHandler(calldocSvc).RegisterRoutes(apiV1)
	chat.NewHandler(chatSvc).RegisterRoutes(apiV1)
	identity.NewHandler(identitySvc).RegisterRoutes(apiV1)
	image.NewHandler(imageSvc).RegisterRoutes(apiV1)

	if cfg.IsDev() {
		seeder := sandbox.NewSeeder(concernSvc, calldocSvc, chatSvc)
		sandbox.NewHandler(seeder).RegisterRoutes(apiV1)
		logger.Info().Msg("sandbox seeding enabled")
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}
