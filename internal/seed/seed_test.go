package seed

import (
	"context"
	"testing"
	"time"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/internal/usecase"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysAgo(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC))

	assert.Equal(t, "2024-03-10", DaysAgo(clock, 0).String())
	assert.Equal(t, "2024-02-29", DaysAgo(clock, 10).String())
	assert.Equal(t, "2023-03-11", DaysAgo(clock, 365).String())
}

func TestSkills(t *testing.T) {
	skills := Skills()
	require.Len(t, skills, 20)

	seen := map[string]bool{}
	for _, s := range skills {
		assert.False(t, seen[s.Name], "duplicate skill %s", s.Name)
		seen[s.Name] = true
	}
	assert.Equal(t, domain.Skill{Name: "Vue.js", ProficiencyLevel: domain.SkillIntermediate, ContextOfUse: domain.ContextLabs}, skills[8])
}

func TestExperiences_DeterministicAndRelative(t *testing.T) {
	clock := clockwork.NewFakeClockAt(Reference)
	ids := map[string]uuid.UUID{}
	for _, s := range Skills() {
		ids[s.Name] = uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.Name))
	}

	a := Experiences(ids, clock)
	b := Experiences(ids, clock)
	assert.Equal(t, a, b)
	require.Len(t, a, 5)

	current := a[0]
	assert.True(t, current.IsCurrent)
	assert.Nil(t, current.EndDate)
	assert.Equal(t, DaysAgo(clock, 200), current.StartDate)
	require.Len(t, current.Technologies, 8)
	assert.Equal(t, ids["React"], current.Technologies[0].ID())

	for _, e := range a[1:] {
		assert.False(t, e.IsCurrent, e.RoleTitle)
		require.NotNil(t, e.EndDate, e.RoleTitle)
		assert.True(t, e.EndDate.After(e.StartDate.Time), e.RoleTitle)
	}
	assert.Equal(t, DaysAgo(clock, 950), a[4].StartDate)
	assert.Equal(t, DaysAgo(clock, 500), *a[4].EndDate)
}

func TestExperiences_DropsUnknownSkills(t *testing.T) {
	clock := clockwork.NewFakeClockAt(Reference)
	react := uuid.New()

	exps := Experiences(map[string]uuid.UUID{"React": react, "Cobol": uuid.New()}, clock)
	for _, e := range exps {
		for _, ref := range e.Technologies {
			assert.Equal(t, react, ref.ID())
		}
	}
	assert.Len(t, exps[4].Technologies, 0)

	assert.NotPanics(t, func() { Experiences(nil, clock) })
}

func TestEducationsAndLanguages(t *testing.T) {
	eds := Educations()
	require.Len(t, eds, 4)
	assert.Equal(t, domain.EducationDegree, eds[0].Type)
	assert.Equal(t, "2016-08-15", eds[0].StartDate.String())
	for _, e := range eds {
		assert.Equal(t, domain.StatusCompleted, e.Status)
		require.NotNil(t, e.Description)
		assert.False(t, e.Description.IsEmpty())
	}

	langs := Languages()
	require.Len(t, langs, 5)
	levels := []domain.LanguageLevel{}
	for _, l := range langs {
		levels = append(levels, l.Level)
	}
	assert.Equal(t, []domain.LanguageLevel{
		domain.LevelNative, domain.LevelFluent, domain.LevelBusiness, domain.LevelConversational, domain.LevelBasic,
	}, levels)

	assert.NotEmpty(t, Learnings())
}

func TestSeeder_Run(t *testing.T) {
	store := repository.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(Reference)
	ctx := context.Background()

	sum, err := NewSeeder(store, clock).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Skills: 20, Experiences: 5, Educations: 4, Languages: 5, Learnings: len(Learnings())}, sum)

	content := usecase.NewContent(store)
	exps, err := content.FindExperiences(ctx, domain.Query{Sort: "-start_date", Depth: 2})
	require.NoError(t, err)
	require.Len(t, exps, 5)
	assert.Equal(t, "Senior Frontend Developer", exps[0].RoleTitle)
	assert.Equal(t, "Junior Developer", exps[4].RoleTitle)

	techs := usecase.ResolvedSkills(exps[0].Technologies)
	require.Len(t, techs, 8)
	assert.Equal(t, "React", techs[0].Name)
}

func TestSeeder_Clear(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	_, err := NewSeeder(store, nil).Run(ctx)
	require.NoError(t, err)

	s := NewSeeder(store, clockwork.NewFakeClockAt(Reference))
	s.Clear = true
	sum, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20+5+4+5+len(Learnings())), sum.Cleared)

	docs, err := store.Find(ctx, model.Skills, domain.Query{})
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
