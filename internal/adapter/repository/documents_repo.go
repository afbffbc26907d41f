package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DocumentsRepo stores every collection in one JSONB table.
type DocumentsRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	return &DocumentsRepo{pool: pool, now: time.Now}
}

const documentColumns = `id, collection, data, created_at, updated_at`

// orderClause renders the ORDER BY for a validated sort field. Data fields
// are passed as the $2 parameter.
func orderClause(field string, desc bool) (string, bool) {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch field {
	case "":
		return "created_at ASC, id ASC", false
	case "createdAt":
		return "created_at " + dir + ", id ASC", false
	case "updatedAt":
		return "updated_at " + dir + ", id ASC", false
	}
	return "data->>$2 " + dir + " NULLS LAST, created_at ASC, id ASC", true
}

// findSQL builds the listing query and its arguments.
func findSQL(slug model.Slug, field string, desc bool, limit int) (string, []interface{}) {
	order, usesField := orderClause(field, desc)
	args := []interface{}{string(slug)}
	if usesField {
		args = append(args, field)
	}
	sql := `SELECT ` + documentColumns + ` FROM documents WHERE collection = $1 ORDER BY ` + order
	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return sql, args
}

func (r *DocumentsRepo) Find(ctx context.Context, slug model.Slug, q domain.Query) ([]domain.Document, error) {
	c, ok := model.Lookup(slug)
	if !ok {
		return nil, fmt.Errorf("find %s: %w", slug, model.ErrUnknownCollection)
	}
	field, desc, err := c.SortField(q.Sort)
	if err != nil {
		return nil, err
	}
	sql, args := findSQL(slug, field, desc, q.Limit)
	return r.query(ctx, sql, args...)
}

func (r *DocumentsRepo) FindByIDs(ctx context.Context, slug model.Slug, ids []uuid.UUID) ([]domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}
	return r.query(ctx, `SELECT `+documentColumns+` FROM documents WHERE collection = $1 AND id = ANY($2::uuid[])`,
		string(slug), strIDs)
}

func (r *DocumentsRepo) Get(ctx context.Context, slug model.Slug, id uuid.UUID) (domain.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE collection = $1 AND id = $2`, string(slug), id)
	d, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
	}
	return d, err
}

func (r *DocumentsRepo) Create(ctx context.Context, slug model.Slug, data json.RawMessage) (domain.Document, error) {
	if _, ok := model.Lookup(slug); !ok {
		return domain.Document{}, fmt.Errorf("create %s: %w", slug, model.ErrUnknownCollection)
	}
	now := r.now().UTC()
	d := domain.Document{ID: uuid.New(), Collection: string(slug), Data: data, CreatedAt: now, UpdatedAt: now}
	_, err := r.pool.Exec(ctx, `INSERT INTO documents (id, collection, data, created_at, updated_at) VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.Collection, []byte(data), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create %s: %w", slug, err)
	}
	return d, nil
}

func (r *DocumentsRepo) Update(ctx context.Context, slug model.Slug, id uuid.UUID, data json.RawMessage) (domain.Document, error) {
	now := r.now().UTC()
	row := r.pool.QueryRow(ctx, `UPDATE documents SET data = $3, updated_at = $4 WHERE collection = $1 AND id = $2
		RETURNING `+documentColumns, string(slug), id, []byte(data), now)
	d, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("update %s/%s: %w", slug, id, err)
	}
	return d, nil
}

func (r *DocumentsRepo) Delete(ctx context.Context, slug model.Slug, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, string(slug), id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", slug, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
	}
	return nil
}

func (r *DocumentsRepo) DeleteAll(ctx context.Context, slug model.Slug) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, string(slug))
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", slug, err)
	}
	return tag.RowsAffected(), nil
}

func (r *DocumentsRepo) query(ctx context.Context, sql string, args ...interface{}) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		d   domain.Document
		raw []byte
	)
	if err := row.Scan(&d.ID, &d.Collection, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Document{}, err
	}
	d.Data = json.RawMessage(raw)
	return d, nil
}
