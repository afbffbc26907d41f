package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
)

// Renderer converts a standalone HTML document to PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type JobsRepo interface {
	Save(ctx context.Context, j *domain.ExportJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error)
}

const renderAttempts = 3

var pdfMagic = []byte("%PDF")

// ExportProcessor renders the page to HTML and PDF artifacts and tracks the
// run as an export job.
type ExportProcessor struct {
	page     *Page
	renderer Renderer
	repo     JobsRepo
	dir      string
	backoff  time.Duration
	now      func() time.Time
	log      *slog.Logger
}

func NewExportProcessor(page *Page, r Renderer, repo JobsRepo, dir string) *ExportProcessor {
	return &ExportProcessor{
		page:     page,
		renderer: r,
		repo:     repo,
		dir:      dir,
		backoff:  time.Second,
		now:      time.Now,
		log:      slog.With("component", "export"),
	}
}

// Start records a pending job. The caller runs Process, usually in the
// background.
func (p *ExportProcessor) Start(ctx context.Context, requestedBy string) (*domain.ExportJob, error) {
	now := p.now().UTC()
	job := &domain.ExportJob{
		ID:          uuid.New(),
		RequestedBy: requestedBy,
		Status:      domain.ExportPending,
		Metadata:    map[string]interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.repo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save export job: %w", err)
	}
	return job, nil
}

func (p *ExportProcessor) Job(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	return p.repo.Get(ctx, id)
}

// Process renders the job's artifacts. A failed PDF render marks the job
// failed but keeps the HTML artifact; only I/O and store errors are returned.
func (p *ExportProcessor) Process(ctx context.Context, job *domain.ExportJob) error {
	if job.Metadata == nil {
		job.Metadata = map[string]interface{}{}
	}
	err := p.process(ctx, job)
	if err != nil {
		job.Status = domain.ExportFailed
		job.Error = err.Error()
	}
	job.UpdatedAt = p.now().UTC()
	if saveErr := p.repo.Save(ctx, job); saveErr != nil {
		return errors.Join(err, fmt.Errorf("save export job: %w", saveErr))
	}
	return err
}

func (p *ExportProcessor) process(ctx context.Context, job *domain.ExportJob) error {
	html, err := p.page.Render(ctx, true)
	if err != nil {
		return err
	}

	// save HTML before rendering so it survives a failed PDF render
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	base := fmt.Sprintf("portfolio_%s_%s", job.CreatedAt.Format("20060102T150405"), job.ID.String()[:8])
	htmlPath := filepath.Join(p.dir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}
	job.HTMLPath = htmlPath

	pdf, renderErr := p.renderPDF(ctx, html)
	if renderErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.log.Warn("pdf render failed", "job", job.ID, "attempts", renderAttempts, "error", renderErr)
		job.Status = domain.ExportFailed
		job.Error = renderErr.Error()
		job.Metadata["pdf_render_error"] = fmt.Sprintf("render failed: %v", renderErr)
		return nil
	}

	pdfPath := filepath.Join(p.dir, base+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return err
	}
	job.PDFPath = pdfPath
	job.Status = domain.ExportCompleted
	job.Metadata["pdf_bytes"] = len(pdf)
	p.log.Info("export completed", "job", job.ID, "pdf", pdfPath)
	return nil
}

// renderPDF retries with exponential backoff and checks the PDF signature.
func (p *ExportProcessor) renderPDF(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < renderAttempts; i++ {
		pdf, err := p.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, pdfMagic) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		p.log.Warn("render attempt failed", "attempt", i+1, "error", err)

		if i < renderAttempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * p.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
