package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	repo "portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/config"
	"portfolio-site/internal/logging"
	"portfolio-site/internal/seed"
	"portfolio-site/internal/usecase"
	infra "portfolio-site/pkg/infrastructure"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
)

// export renders the portfolio to HTML and PDF once, with the real chromedp
// renderer. Without DATABASE_URL it renders the seed fixtures.
func main() {
	out := flag.String("out", "", "output directory (default EXPORT_DIR)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg := config.Load()
	logging.Init(cfg.Environment)
	if *out != "" {
		cfg.ExportDir = *out
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var store usecase.Store
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("database not available, rendering seed fixtures", "error", err)
		mem := repo.NewMemoryStore()
		if _, err := seed.NewSeeder(mem, clockwork.NewRealClock()).Run(ctx); err != nil {
			fail("seed", err)
		}
		store = mem
	} else {
		defer pool.Close()
		store = repo.NewDocumentsRepo(pool)
	}

	layout, err := usecase.LoadLayout(cfg.LayoutPath)
	if err != nil {
		fail("layout", err)
	}
	page := usecase.NewPage(usecase.NewBlocks(usecase.NewContent(store)), layout)
	processor := usecase.NewExportProcessor(page, infra.NewChromedpRenderer(cfg.ChromePath), repo.NewJobsRepo(nil), cfg.ExportDir)

	job, err := processor.Start(ctx, "cli")
	if err != nil {
		fail("start", err)
	}
	if err := processor.Process(ctx, job); err != nil {
		fail("process", err)
	}

	fmt.Printf("status: %s\nhtml: %s\npdf: %s\n", job.Status, job.HTMLPath, job.PDFPath)
	if job.Error != "" {
		fmt.Printf("error: %s\n", job.Error)
		os.Exit(1)
	}
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(2)
}
