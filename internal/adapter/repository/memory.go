package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. It backs development runs
// without a database and the test suites.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[model.Slug][]domain.Document
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[model.Slug][]domain.Document{}, now: time.Now}
}

func (s *MemoryStore) Find(ctx context.Context, slug model.Slug, q domain.Query) ([]domain.Document, error) {
	c, ok := model.Lookup(slug)
	if !ok {
		return nil, fmt.Errorf("find %s: %w", slug, model.ErrUnknownCollection)
	}
	field, desc, err := c.SortField(q.Sort)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]domain.Document, len(s.docs[slug]))
	copy(out, s.docs[slug])
	s.mu.RUnlock()

	if field != "" {
		keys := make(map[uuid.UUID]sortKey, len(out))
		for _, d := range out {
			keys[d.ID] = sortKeyOf(d, field)
		}
		sort.SliceStable(out, func(i, j int) bool {
			a, b := keys[out[i].ID], keys[out[j].ID]
			if a.missing != b.missing {
				return b.missing
			}
			if desc {
				return a.value > b.value
			}
			return a.value < b.value
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *MemoryStore) FindByIDs(ctx context.Context, slug model.Slug, ids []uuid.UUID) ([]domain.Document, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Document
	for _, d := range s.docs[slug] {
		if want[d.ID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, slug model.Slug, id uuid.UUID) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs[slug] {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Document{}, fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
}

func (s *MemoryStore) Create(ctx context.Context, slug model.Slug, data json.RawMessage) (domain.Document, error) {
	if _, ok := model.Lookup(slug); !ok {
		return domain.Document{}, fmt.Errorf("create %s: %w", slug, model.ErrUnknownCollection)
	}
	now := s.now().UTC()
	d := domain.Document{
		ID:         uuid.New(),
		Collection: string(slug),
		Data:       append(json.RawMessage(nil), data...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.mu.Lock()
	s.docs[slug] = append(s.docs[slug], d)
	s.mu.Unlock()
	return d, nil
}

func (s *MemoryStore) Update(ctx context.Context, slug model.Slug, id uuid.UUID, data json.RawMessage) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.docs[slug] {
		if d.ID == id {
			d.Data = append(json.RawMessage(nil), data...)
			d.UpdatedAt = s.now().UTC()
			s.docs[slug][i] = d
			return d, nil
		}
	}
	return domain.Document{}, fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
}

func (s *MemoryStore) Delete(ctx context.Context, slug model.Slug, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.docs[slug]
	for i, d := range docs {
		if d.ID == id {
			s.docs[slug] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s/%s: %w", slug, id, domain.ErrNotFound)
}

func (s *MemoryStore) DeleteAll(ctx context.Context, slug model.Slug) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.docs[slug]))
	delete(s.docs, slug)
	return n, nil
}

// timestampLayout has fixed width so timestamps sort as strings.
const timestampLayout = "2006-01-02T15:04:05.000000000"

type sortKey struct {
	value   string
	missing bool
}

func sortKeyOf(d domain.Document, field string) sortKey {
	switch field {
	case "createdAt":
		return sortKey{value: d.CreatedAt.UTC().Format(timestampLayout)}
	case "updatedAt":
		return sortKey{value: d.UpdatedAt.UTC().Format(timestampLayout)}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(d.Data, &m); err != nil {
		return sortKey{missing: true}
	}
	switch v := m[field].(type) {
	case string:
		return sortKey{value: v}
	case bool:
		return sortKey{value: fmt.Sprint(v)}
	}
	return sortKey{missing: true}
}
