package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
)

// Content is the typed read side of the store.
type Content struct {
	store Store
}

func NewContent(store Store) *Content {
	return &Content{store: store}
}

func (c *Content) FindExperiences(ctx context.Context, q domain.Query) ([]domain.Experience, error) {
	docs, err := c.store.Find(ctx, model.Experiences, q)
	if err != nil {
		return nil, fmt.Errorf("find experiences: %w", err)
	}
	out, err := decodeAll(docs, func(e *domain.Experience, d domain.Document) {
		e.ID, e.CreatedAt, e.UpdatedAt = d.ID, d.CreatedAt, d.UpdatedAt
	})
	if err != nil {
		return nil, err
	}
	if q.Depth > 0 {
		if err := c.populateTechnologies(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Content) FindEducations(ctx context.Context, q domain.Query) ([]domain.Education, error) {
	docs, err := c.store.Find(ctx, model.Educations, q)
	if err != nil {
		return nil, fmt.Errorf("find educations: %w", err)
	}
	return decodeAll(docs, func(e *domain.Education, d domain.Document) {
		e.ID, e.CreatedAt, e.UpdatedAt = d.ID, d.CreatedAt, d.UpdatedAt
	})
}

func (c *Content) FindSkills(ctx context.Context, q domain.Query) ([]domain.Skill, error) {
	docs, err := c.store.Find(ctx, model.Skills, q)
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	return decodeSkills(docs)
}

func (c *Content) FindLanguages(ctx context.Context, q domain.Query) ([]domain.Language, error) {
	docs, err := c.store.Find(ctx, model.Languages, q)
	if err != nil {
		return nil, fmt.Errorf("find languages: %w", err)
	}
	return decodeAll(docs, func(l *domain.Language, d domain.Document) {
		l.ID, l.CreatedAt, l.UpdatedAt = d.ID, d.CreatedAt, d.UpdatedAt
	})
}

func (c *Content) FindLearnings(ctx context.Context, q domain.Query) ([]domain.Learning, error) {
	docs, err := c.store.Find(ctx, model.Learnings, q)
	if err != nil {
		return nil, fmt.Errorf("find learnings: %w", err)
	}
	return decodeAll(docs, func(l *domain.Learning, d domain.Document) {
		l.ID, l.CreatedAt, l.UpdatedAt = d.ID, d.CreatedAt, d.UpdatedAt
	})
}

// populateTechnologies swaps skill ids for skill records. Ids with no
// matching skill stay bare.
func (c *Content) populateTechnologies(ctx context.Context, exps []domain.Experience) error {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, e := range exps {
		for _, ref := range e.Technologies {
			if _, ok := ref.Resolved(); ok || seen[ref.ID()] {
				continue
			}
			seen[ref.ID()] = true
			ids = append(ids, ref.ID())
		}
	}
	if len(ids) == 0 {
		return nil
	}

	docs, err := c.store.FindByIDs(ctx, model.Skills, ids)
	if err != nil {
		return fmt.Errorf("populate technologies: %w", err)
	}
	skills, err := decodeSkills(docs)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]domain.Skill, len(skills))
	for _, s := range skills {
		byID[s.ID] = s
	}

	for i := range exps {
		for j, ref := range exps[i].Technologies {
			if s, ok := byID[ref.ID()]; ok {
				exps[i].Technologies[j] = domain.Populated(s)
			}
		}
	}
	return nil
}

func decodeSkills(docs []domain.Document) ([]domain.Skill, error) {
	return decodeAll(docs, func(s *domain.Skill, d domain.Document) {
		s.ID, s.CreatedAt, s.UpdatedAt = d.ID, d.CreatedAt, d.UpdatedAt
	})
}

// decodeAll unmarshals each document's data and lets stamp copy the
// store-owned fields onto the record.
func decodeAll[T any](docs []domain.Document, stamp func(*T, domain.Document)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", d.Collection, d.ID, err)
		}
		stamp(&v, d)
		out = append(out, v)
	}
	return out, nil
}
