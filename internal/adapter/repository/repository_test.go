package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDoc(t *testing.T, s *MemoryStore, slug model.Slug, data string) domain.Document {
	t.Helper()
	d, err := s.Create(context.Background(), slug, json.RawMessage(data))
	require.NoError(t, err)
	return d
}

func TestMemoryStoreSortsByDataField(t *testing.T) {
	s := NewMemoryStore()
	createDoc(t, s, model.Educations, `{"title":"a","start_date":"2020-01-01"}`)
	createDoc(t, s, model.Educations, `{"title":"b","start_date":"2022-06-15"}`)
	createDoc(t, s, model.Educations, `{"title":"c"}`)
	createDoc(t, s, model.Educations, `{"title":"d","start_date":"2019-03-01"}`)

	docs, err := s.Find(context.Background(), model.Educations, domain.Query{Sort: "-start_date"})
	require.NoError(t, err)
	require.Len(t, docs, 4)

	var titles []string
	for _, d := range docs {
		var m map[string]string
		require.NoError(t, json.Unmarshal(d.Data, &m))
		titles = append(titles, m["title"])
	}
	assert.Equal(t, []string{"b", "a", "d", "c"}, titles)

	docs, err = s.Find(context.Background(), model.Educations, domain.Query{Sort: "start_date", Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, string(docs[0].Data), "2019-03-01")
}

func TestMemoryStoreDefaultOrderIsInsertion(t *testing.T) {
	s := NewMemoryStore()
	first := createDoc(t, s, model.Languages, `{"name":"English"}`)
	createDoc(t, s, model.Languages, `{"name":"Spanish"}`)

	docs, err := s.Find(context.Background(), model.Languages, domain.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID)
}

func TestMemoryStoreRejectsBadQueries(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Find(context.Background(), "posts", domain.Query{})
	assert.ErrorIs(t, err, model.ErrUnknownCollection)

	_, err = s.Find(context.Background(), model.Skills, domain.Query{Sort: "-nope"})
	assert.Error(t, err)

	_, err = s.Create(context.Background(), "posts", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, model.ErrUnknownCollection)
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { tick = tick.Add(time.Minute); return tick }

	d := createDoc(t, s, model.Skills, `{"name":"Go"}`)

	got, err := s.Get(ctx, model.Skills, d.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Go"}`, string(got.Data))

	up, err := s.Update(ctx, model.Skills, d.ID, json.RawMessage(`{"name":"Golang"}`))
	require.NoError(t, err)
	assert.True(t, up.UpdatedAt.After(up.CreatedAt))
	assert.Equal(t, d.ID, up.ID)

	byIDs, err := s.FindByIDs(ctx, model.Skills, []uuid.UUID{d.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	require.NoError(t, s.Delete(ctx, model.Skills, d.ID))
	_, err = s.Get(ctx, model.Skills, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, model.Skills, d.ID), domain.ErrNotFound)
	_, err = s.Update(ctx, model.Skills, d.ID, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreDeleteAll(t *testing.T) {
	s := NewMemoryStore()
	createDoc(t, s, model.Skills, `{"name":"Go"}`)
	createDoc(t, s, model.Skills, `{"name":"SQL"}`)
	createDoc(t, s, model.Languages, `{"name":"English"}`)

	n, err := s.DeleteAll(context.Background(), model.Skills)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	docs, _ := s.Find(context.Background(), model.Languages, domain.Query{})
	assert.Len(t, docs, 1)
}

func TestFindSQL(t *testing.T) {
	sql, args := findSQL(model.Experiences, "start_date", true, 10)
	assert.Contains(t, sql, "ORDER BY data->>$2 DESC NULLS LAST")
	assert.Contains(t, sql, "LIMIT $3")
	assert.Equal(t, []interface{}{"experiences", "start_date", 10}, args)

	sql, args = findSQL(model.Languages, "", false, 0)
	assert.Contains(t, sql, "ORDER BY created_at ASC")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []interface{}{"languages"}, args)

	sql, args = findSQL(model.Skills, "createdAt", true, 5)
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT $2")
	assert.Len(t, args, 2)
}

func TestJobsRepoWithoutPool(t *testing.T) {
	ctx := context.Background()
	r := NewJobsRepo(nil)
	j := &domain.ExportJob{ID: uuid.New(), Status: domain.ExportPending}
	require.NoError(t, r.Save(ctx, j))

	j.Status = domain.ExportCompleted
	require.NoError(t, r.Save(ctx, j))

	got, err := r.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportCompleted, got.Status)

	_, err = r.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
