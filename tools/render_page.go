package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	repo "portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/seed"
	"portfolio-site/internal/usecase"

	"github.com/jonboulle/clockwork"
)

// render_page writes the fixture portfolio as a standalone HTML file, with
// dates relative to a fixed day so the output is stable across runs.
func main() {
	outFile := filepath.Join("portfolio-data", "generated", "portfolio_fixtures.html")
	if len(os.Args) > 1 {
		outFile = os.Args[1]
	}

	ctx := context.Background()
	store := repo.NewMemoryStore()
	if _, err := seed.NewSeeder(store, clockwork.NewFakeClockAt(seed.Reference)).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(2)
	}

	layout, err := usecase.LoadLayout(os.Getenv("LAYOUT_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "layout: %v\n", err)
		os.Exit(2)
	}
	html, err := usecase.NewPage(usecase.NewBlocks(usecase.NewContent(store)), layout).Render(ctx, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create dir: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", outFile)
}
