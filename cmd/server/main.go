package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "portfolio-site/internal/adapter/http"
	repo "portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/config"
	"portfolio-site/internal/infrastructure/migration"
	"portfolio-site/internal/logging"
	"portfolio-site/internal/seed"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/auth"
	infra "portfolio-site/pkg/infrastructure"

	"github.com/ansrivas/fiberprometheus/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, jobsRepo, closeDB := openStores(ctx, cfg)
	defer closeDB()

	layout, err := usecase.LoadLayout(cfg.LayoutPath)
	if err != nil {
		slog.Error("failed to load page layout", "path", cfg.LayoutPath, "error", err)
		os.Exit(1)
	}

	var jwtAuth *auth.JWTAuth
	if cfg.AuthEnabled() {
		jwtAuth, err = auth.NewJWTAuth(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			slog.Error("failed to configure auth", "error", err)
			os.Exit(1)
		}
	} else if cfg.IsProduction() {
		slog.Error("JWT_SECRET and ADMIN_PASSWORD must be set in production")
		os.Exit(1)
	} else {
		slog.Warn("admin login disabled: JWT_SECRET or ADMIN_PASSWORD not set; collections are read-only")
	}

	if cfg.SeedOnStart {
		s := seed.NewSeeder(store, clockwork.NewRealClock())
		s.Clear = true
		if _, err := s.Run(ctx); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	blocks := usecase.NewBlocks(usecase.NewContent(store))
	page := usecase.NewPage(blocks, layout)
	exports := usecase.NewExportProcessor(page, infra.NewChromedpRenderer(cfg.ChromePath), jobsRepo, cfg.ExportDir)

	h := httpadapter.NewHandler(store, page, blocks, exports, jwtAuth, httpadapter.Admin{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	app := httpadapter.NewApp(h, fiberprometheus.New("portfolio_site"))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()
	slog.Info("server started", "port", cfg.Port, "environment", cfg.Environment)

	<-ctx.Done()
	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// openStores connects to Postgres when DATABASE_URL is set and falls back to
// in-memory stores otherwise.
func openStores(ctx context.Context, cfg *config.Config) (usecase.Store, *repo.JobsRepo, func()) {
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		if cfg.IsProduction() {
			slog.Error("database not available", "error", err)
			os.Exit(1)
		}
		slog.Warn("database not available, using in-memory store", "error", err)
		return repo.NewMemoryStore(), repo.NewJobsRepo(nil), func() {}
	}

	if err := migration.RunMigrations(ctx, pool); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	return repo.NewDocumentsRepo(pool), repo.NewJobsRepo(pool), pool.Close
}
