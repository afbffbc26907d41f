package usecase

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	outputs  [][]byte
	errs     []error
	calls    int
	lastHTML string
}

func (f *fakeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	i := f.calls
	f.calls++
	f.lastHTML = html
	var out []byte
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

func newTestProcessor(t *testing.T, r Renderer) (*ExportProcessor, *repository.JobsRepo) {
	t.Helper()
	store := newMemory()
	put(t, store, model.Languages, domain.Language{Name: "English", Level: domain.LevelFluent})
	l, err := LoadLayout("")
	require.NoError(t, err)

	jobs := repository.NewJobsRepo(nil)
	p := NewExportProcessor(NewPage(NewBlocks(NewContent(store)), l), r, jobs, t.TempDir())
	p.backoff = time.Millisecond
	return p, jobs
}

func TestExportProcessor_Completes(t *testing.T) {
	r := &fakeRenderer{outputs: [][]byte{[]byte("%PDF-1.7 fake")}}
	p, jobs := newTestProcessor(t, r)
	ctx := context.Background()

	job, err := p.Start(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportPending, job.Status)

	require.NoError(t, p.Process(ctx, job))

	saved, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportCompleted, saved.Status)
	assert.Equal(t, "admin@example.com", saved.RequestedBy)
	assert.Empty(t, saved.Error)

	pdf, err := os.ReadFile(saved.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(pdf))

	html, err := os.ReadFile(saved.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<style>")
	assert.Contains(t, string(html), "English")
	assert.Equal(t, string(html), r.lastHTML)
	assert.Equal(t, 1, r.calls)
}

func TestExportProcessor_RetriesThenSucceeds(t *testing.T) {
	r := &fakeRenderer{
		outputs: [][]byte{nil, []byte("<html>not a pdf"), []byte("%PDF-1.4")},
		errs:    []error{errors.New("chrome crashed")},
	}
	p, jobs := newTestProcessor(t, r)
	ctx := context.Background()

	job, err := p.Start(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NoError(t, p.Process(ctx, job))

	saved, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportCompleted, saved.Status)
	assert.Equal(t, 3, r.calls)
}

func TestExportProcessor_FailsAfterAttempts(t *testing.T) {
	boom := errors.New("no chrome")
	r := &fakeRenderer{errs: []error{boom, boom, boom, boom}}
	p, jobs := newTestProcessor(t, r)
	ctx := context.Background()

	job, err := p.Start(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NoError(t, p.Process(ctx, job))

	saved, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFailed, saved.Status)
	assert.Equal(t, "no chrome", saved.Error)
	assert.Empty(t, saved.PDFPath)
	assert.FileExists(t, saved.HTMLPath)
	assert.Equal(t, renderAttempts, r.calls)
}

func TestExportProcessor_PageErrorMarksJobFailed(t *testing.T) {
	jobs := repository.NewJobsRepo(nil)
	page := NewPage(NewBlocks(NewContent(failingStore{})), Layout{Blocks: []model.BlockConfig{{BlockType: "skills", Limit: 10}}})
	p := NewExportProcessor(page, &fakeRenderer{}, jobs, t.TempDir())
	ctx := context.Background()

	job, err := p.Start(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Process(ctx, job), errBoom)

	saved, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFailed, saved.Status)
	assert.Contains(t, saved.Error, "boom")
}
