package usecase

import (
	"context"
	"testing"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_FindExperiencesPopulatesTechnologies(t *testing.T) {
	store := newMemory()
	goID := putSkill(t, store, "Go")
	pgID := putSkill(t, store, "PostgreSQL")
	missing := uuid.New()
	put(t, store, model.Experiences, experience("Engineer", domain.NewDate(2023, 1, 1), goID, missing, pgID))

	c := NewContent(store)

	exps, err := c.FindExperiences(context.Background(), domain.Query{Depth: 2})
	require.NoError(t, err)
	require.Len(t, exps, 1)
	require.Len(t, exps[0].Technologies, 3)

	s, ok := exps[0].Technologies[0].Resolved()
	require.True(t, ok)
	assert.Equal(t, "Go", s.Name)
	assert.Equal(t, goID, s.ID)

	_, ok = exps[0].Technologies[1].Resolved()
	assert.False(t, ok)
	assert.Equal(t, missing, exps[0].Technologies[1].ID())

	names := []string{}
	for _, s := range ResolvedSkills(exps[0].Technologies) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Go", "PostgreSQL"}, names)
}

func TestContent_DepthZeroKeepsReferences(t *testing.T) {
	store := newMemory()
	goID := putSkill(t, store, "Go")
	put(t, store, model.Experiences, experience("Engineer", domain.NewDate(2023, 1, 1), goID))

	exps, err := NewContent(store).FindExperiences(context.Background(), domain.Query{})
	require.NoError(t, err)
	require.Len(t, exps[0].Technologies, 1)
	_, ok := exps[0].Technologies[0].Resolved()
	assert.False(t, ok)
	assert.Equal(t, goID, exps[0].Technologies[0].ID())
}

func TestContent_StampsStoreFields(t *testing.T) {
	store := newMemory()
	d := put(t, store, model.Languages, domain.Language{Name: "English", Level: domain.LevelFluent})

	langs, err := NewContent(store).FindLanguages(context.Background(), domain.Query{})
	require.NoError(t, err)
	require.Len(t, langs, 1)
	assert.Equal(t, d.ID, langs[0].ID)
	assert.Equal(t, d.CreatedAt, langs[0].CreatedAt)
	assert.Equal(t, domain.LevelFluent, langs[0].Level)
}

func TestContent_PropagatesStoreErrors(t *testing.T) {
	c := NewContent(failingStore{})
	_, err := c.FindEducations(context.Background(), domain.Query{})
	assert.ErrorIs(t, err, errBoom)
	_, err = c.FindLearnings(context.Background(), domain.Query{})
	assert.ErrorIs(t, err, errBoom)
}
