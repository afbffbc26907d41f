package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/internal/usecase"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Summary counts the records created per collection.
type Summary struct {
	Cleared     int64 `json:"cleared"`
	Skills      int   `json:"skills"`
	Experiences int   `json:"experiences"`
	Educations  int   `json:"educations"`
	Languages   int   `json:"languages"`
	Learnings   int   `json:"learnings"`
}

// Seeder loads the fixtures into a store.
type Seeder struct {
	store usecase.Store
	clock clockwork.Clock
	// Clear empties the five collections before seeding.
	Clear bool
	log   *slog.Logger
}

func NewSeeder(store usecase.Store, clock clockwork.Clock) *Seeder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Seeder{store: store, clock: clock, log: slog.With("component", "seed")}
}

// Run creates skills first so experiences can reference them by id, then
// the remaining collections.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if s.Clear {
		for _, c := range model.All() {
			n, err := s.store.DeleteAll(ctx, c.Slug)
			if err != nil {
				return sum, fmt.Errorf("clear %s: %w", c.Slug, err)
			}
			sum.Cleared += n
		}
		s.log.Info("cleared collections", "documents", sum.Cleared)
	}

	skillIDs := map[string]uuid.UUID{}
	for _, sk := range Skills() {
		d, err := s.create(ctx, model.Skills, sk)
		if err != nil {
			return sum, err
		}
		skillIDs[sk.Name] = d.ID
		sum.Skills++
	}

	for _, e := range Experiences(skillIDs, s.clock) {
		if _, err := s.create(ctx, model.Experiences, e); err != nil {
			return sum, err
		}
		sum.Experiences++
	}
	for _, e := range Educations() {
		if _, err := s.create(ctx, model.Educations, e); err != nil {
			return sum, err
		}
		sum.Educations++
	}
	for _, l := range Languages() {
		if _, err := s.create(ctx, model.Languages, l); err != nil {
			return sum, err
		}
		sum.Languages++
	}
	for _, l := range Learnings() {
		if _, err := s.create(ctx, model.Learnings, l); err != nil {
			return sum, err
		}
		sum.Learnings++
	}

	s.log.Info("seeded portfolio",
		"skills", sum.Skills,
		"experiences", sum.Experiences,
		"educations", sum.Educations,
		"languages", sum.Languages,
		"learnings", sum.Learnings,
	)
	return sum, nil
}

func (s *Seeder) create(ctx context.Context, slug model.Slug, rec interface{}) (domain.Document, error) {
	raw, err := usecase.EncodeRecord(rec)
	if err != nil {
		return domain.Document{}, fmt.Errorf("encode %s: %w", slug, err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Document{}, err
	}
	if err := model.MustLookup(slug).Validate(doc); err != nil {
		return domain.Document{}, err
	}
	d, err := s.store.Create(ctx, slug, raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create %s: %w", slug, err)
	}
	return d, nil
}
