package usecase

import (
	"context"
	"encoding/json"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
)

// Store is the document store every read and write goes through.
type Store interface {
	Find(ctx context.Context, slug model.Slug, q domain.Query) ([]domain.Document, error)
	FindByIDs(ctx context.Context, slug model.Slug, ids []uuid.UUID) ([]domain.Document, error)
	Get(ctx context.Context, slug model.Slug, id uuid.UUID) (domain.Document, error)
	Create(ctx context.Context, slug model.Slug, data json.RawMessage) (domain.Document, error)
	Update(ctx context.Context, slug model.Slug, id uuid.UUID, data json.RawMessage) (domain.Document, error)
	Delete(ctx context.Context, slug model.Slug, id uuid.UUID) error
	DeleteAll(ctx context.Context, slug model.Slug) (int64, error)
}
