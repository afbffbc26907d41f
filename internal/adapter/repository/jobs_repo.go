package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo persists export jobs. Without a pool it keeps them in memory so
// exports still work in development.
type JobsRepo struct {
	pool *pgxpool.Pool

	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.ExportJob
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool, jobs: map[uuid.UUID]domain.ExportJob{}}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	if r.pool == nil {
		stored := *j
		stored.Metadata = maps.Clone(j.Metadata)
		r.mu.Lock()
		r.jobs[j.ID] = stored
		r.mu.Unlock()
		return nil
	}

	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("jobs_repo: encode metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO export_jobs (id, requested_by, status, metadata, html_path, pdf_path, error, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, metadata = EXCLUDED.metadata, html_path = EXCLUDED.html_path,
			pdf_path = EXCLUDED.pdf_path, error = EXCLUDED.error, updated_at = EXCLUDED.updated_at`,
		j.ID, j.RequestedBy, string(j.Status), metaB, j.HTMLPath, j.PDFPath, j.Error, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	if r.pool == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		j, ok := r.jobs[id]
		if !ok {
			return nil, fmt.Errorf("export job %s: %w", id, domain.ErrNotFound)
		}
		j.Metadata = maps.Clone(j.Metadata)
		return &j, nil
	}

	var (
		j      domain.ExportJob
		status string
		metaB  []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, requested_by, status, metadata, html_path, pdf_path, error, created_at, updated_at
		FROM export_jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.RequestedBy, &status, &metaB, &j.HTMLPath, &j.PDFPath, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("export job %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	j.Status = domain.ExportStatus(status)
	if len(metaB) > 0 {
		if err := json.Unmarshal(metaB, &j.Metadata); err != nil {
			return nil, fmt.Errorf("jobs_repo: decode metadata: %w", err)
		}
	}
	return &j, nil
}
