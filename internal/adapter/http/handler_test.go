package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pdfRenderer struct{}

func (pdfRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.7\n" + html[:10]), nil
}

type testEnv struct {
	app   *fiber.App
	store *repository.MemoryStore
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	layout, err := usecase.LoadLayout("")
	require.NoError(t, err)
	blocks := usecase.NewBlocks(usecase.NewContent(store))
	page := usecase.NewPage(blocks, layout)
	exports := usecase.NewExportProcessor(page, pdfRenderer{}, repository.NewJobsRepo(nil), t.TempDir())

	jwtAuth, err := auth.NewJWTAuth("test-secret", time.Hour)
	require.NoError(t, err)
	admin := Admin{Email: "admin@example.com", Password: "hunter2"}

	h := NewHandler(store, page, blocks, exports, jwtAuth, admin)
	env := &testEnv{app: NewApp(h, nil), store: store}
	env.token = env.login(t, admin.Email, admin.Password)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.do(t, "POST", "/api/users/login", map[string]string{"email": email, "password": password}, "")
	if status != fiber.StatusOK {
		return ""
	}
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Token
}

func decode(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &m), string(b))
	return m
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	assert.NotEmpty(t, env.token)
	assert.Empty(t, env.login(t, "admin@example.com", "wrong"))
	assert.Empty(t, env.login(t, "someone@example.com", "hunter2"))
}

func TestCollections_PublicReadAuthenticatedWrite(t *testing.T) {
	env := newTestEnv(t)
	skill := map[string]interface{}{"name": "Go", "proficiency_level": "expert", "context_of_use": "production"}

	status, _ := env.do(t, "POST", "/api/skills", skill, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, "POST", "/api/skills", skill, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/skills", skill, env.token)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	id := decode(t, body)["doc"].(map[string]interface{})["id"].(string)

	status, body = env.do(t, "GET", "/api/skills", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	list := decode(t, body)
	assert.Equal(t, float64(1), list["totalDocs"])

	status, body = env.do(t, "GET", "/api/skills/"+id, nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Go", decode(t, body)["name"])

	status, _ = env.do(t, "PATCH", "/api/skills/"+id, map[string]interface{}{"proficiency_level": "advanced"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, body = env.do(t, "PATCH", "/api/skills/"+id, map[string]interface{}{"proficiency_level": "advanced"}, env.token)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "advanced", decode(t, body)["doc"].(map[string]interface{})["proficiency_level"])

	status, _ = env.do(t, "DELETE", "/api/skills/"+id, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = env.do(t, "DELETE", "/api/skills/"+id, nil, env.token)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = env.do(t, "GET", "/api/skills/"+id, nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCollections_Errors(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "GET", "/api/projects", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, "GET", "/api/skills?sort=-bogus", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, "GET", "/api/skills/not-a-uuid", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := env.do(t, "POST", "/api/languages", map[string]interface{}{"name": "English", "level": "elvish"}, env.token)
	require.Equal(t, fiber.StatusBadRequest, status)
	resp := decode(t, body)
	assert.Equal(t, "validation failed", resp["error"])
	assert.NotEmpty(t, resp["errors"])
}

func TestSeedAndRender(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "POST", "/api/seed", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/seed", nil, env.token)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, float64(20), decode(t, body)["skills"])

	status, body = env.do(t, "GET", "/api/experiences?sort=-start_date&depth=1&limit=1", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	docs := decode(t, body)["docs"].([]interface{})
	require.Len(t, docs, 1)
	exp := docs[0].(map[string]interface{})
	assert.Equal(t, "Senior Frontend Developer", exp["role_title"])
	techs := exp["technologies"].([]interface{})
	assert.Equal(t, "React", techs[0].(map[string]interface{})["name"])

	status, body = env.do(t, "GET", "/", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	page := string(body)
	assert.Contains(t, page, "Senior Frontend Developer")
	assert.Contains(t, page, "Present")
	assert.Contains(t, page, "Portuguese")

	status, body = env.do(t, "GET", "/blocks/languages?title=Spoken&limit=2", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	frag := string(body)
	assert.Contains(t, frag, "Spoken")
	assert.Equal(t, 2, strings.Count(frag, `class="card language"`))

	status, _ = env.do(t, "GET", "/blocks/gallery", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = env.do(t, "GET", "/assets/style.css", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), ".card")
}

func TestEmptyBlockFragment(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, "GET", "/blocks/experience", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body)
}

func TestExports(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "POST", "/api/exports", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/exports", nil, env.token)
	require.Equal(t, fiber.StatusAccepted, status, string(body))
	jobID := decode(t, body)["jobId"].(string)

	var job map[string]interface{}
	require.Eventually(t, func() bool {
		status, body := env.do(t, "GET", "/api/exports/"+jobID, nil, env.token)
		if status != fiber.StatusOK {
			return false
		}
		job = decode(t, body)
		return job["status"] == string(domain.ExportCompleted)
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "admin@example.com", job["requested_by"])

	status, body = env.do(t, "GET", "/api/exports/"+jobID+"/pdf", nil, env.token)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	status, _ = env.do(t, "GET", "/api/exports/"+jobID, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestHealthAndMetrics(t *testing.T) {
	store := repository.NewMemoryStore()
	layout, err := usecase.LoadLayout("")
	require.NoError(t, err)
	blocks := usecase.NewBlocks(usecase.NewContent(store))
	h := NewHandler(store, usecase.NewPage(blocks, layout), blocks, nil, nil, Admin{})
	app := NewApp(h, fiberprometheus.New("portfolio_site_test"))

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "portfolio_site_test")

	resp, err = app.Test(httptest.NewRequest("POST", "/api/users/login", strings.NewReader(`{}`)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
