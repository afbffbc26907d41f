package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/pkg/richtext"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, s Store, slug model.Slug, rec interface{}) domain.Document {
	t.Helper()
	raw, err := EncodeRecord(rec)
	require.NoError(t, err)
	d, err := s.Create(context.Background(), slug, raw)
	require.NoError(t, err)
	return d
}

func putSkill(t *testing.T, s Store, name string) uuid.UUID {
	t.Helper()
	d := put(t, s, model.Skills, domain.Skill{Name: name, ProficiencyLevel: domain.SkillExpert, ContextOfUse: domain.ContextProduction})
	return d.ID
}

func ptr(d domain.Date) *domain.Date { return &d }

func experience(role string, start domain.Date, techs ...uuid.UUID) domain.Experience {
	e := domain.Experience{
		RoleTitle:        role,
		CompanyName:      "Acme",
		StartDate:        start,
		Context:          "Platform team",
		Responsibilities: richtext.FromPlainText("Built things"),
	}
	for _, id := range techs {
		e.Technologies = append(e.Technologies, domain.RefTo(id))
	}
	return e
}

func newMemory() *repository.MemoryStore { return repository.NewMemoryStore() }

var errBoom = errors.New("boom")

// failingStore fails every read.
type failingStore struct{ Store }

func (failingStore) Find(context.Context, model.Slug, domain.Query) ([]domain.Document, error) {
	return nil, errBoom
}

func (failingStore) FindByIDs(context.Context, model.Slug, []uuid.UUID) ([]domain.Document, error) {
	return nil, errBoom
}

func mustJSON(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}
