package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/internal/seed"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Admin is the single account allowed to log in.
type Admin struct {
	Email    string
	Password string
}

type Handler struct {
	store   usecase.Store
	editor  *usecase.Editor
	blocks  *usecase.Blocks
	page    *usecase.Page
	exports *usecase.ExportProcessor
	jwtAuth *auth.JWTAuth
	admin   Admin
	clock   clockwork.Clock
}

// NewHandler wires the HTTP surface. jwtAuth and exports may be nil, which
// disables login and exports respectively.
func NewHandler(store usecase.Store, page *usecase.Page, blocks *usecase.Blocks, exports *usecase.ExportProcessor, jwtAuth *auth.JWTAuth, admin Admin) *Handler {
	return &Handler{
		store:   store,
		editor:  usecase.NewEditor(store),
		blocks:  blocks,
		page:    page,
		exports: exports,
		jwtAuth: jwtAuth,
		admin:   admin,
		clock:   clockwork.NewRealClock(),
	}
}

func (h *Handler) Page(c *fiber.Ctx) error {
	html, err := h.page.Render(c.UserContext(), false)
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (h *Handler) Stylesheet(c *fiber.Ctx) error {
	c.Type("css", "utf-8")
	return c.SendString(usecase.Stylesheet())
}

// Block renders one block as an HTML fragment.
func (h *Handler) Block(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if _, ok := model.LookupBlock(slug); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown block " + slug})
	}
	cfg := model.BlockConfig{
		BlockType: slug,
		Title:     c.Query("title"),
		Limit:     c.QueryInt("limit", 0),
	}.Normalize()

	html, err := h.blocks.Render(c.UserContext(), cfg)
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(string(html))
}

func (h *Handler) ListCollection(c *fiber.Ctx) error {
	slug := model.Slug(c.Params("collection"))
	q := domain.Query{
		Limit: c.QueryInt("limit", 0),
		Sort:  c.Query("sort"),
		Depth: c.QueryInt("depth", 0),
	}
	docs, err := h.editor.Find(c.UserContext(), slug, q, accessArgs(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"docs": docs, "totalDocs": len(docs)})
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid id"})
	}
	doc, err := h.editor.Get(c.UserContext(), model.Slug(c.Params("collection")), id, c.QueryInt("depth", 0), accessArgs(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

func (h *Handler) CreateDocument(c *fiber.Ctx) error {
	var input map[string]interface{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := h.editor.Create(c.UserContext(), model.Slug(c.Params("collection")), input, accessArgs(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"doc": doc})
}

func (h *Handler) UpdateDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid id"})
	}
	var input map[string]interface{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := h.editor.Update(c.UserContext(), model.Slug(c.Params("collection")), id, input, accessArgs(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"doc": doc})
}

func (h *Handler) DeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.editor.Delete(c.UserContext(), model.Slug(c.Params("collection")), id, accessArgs(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id.String()})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	if h.jwtAuth == nil || h.admin.Password == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "login is not configured"})
	}
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.admin.Password)) == 1
	if !emailOK || !passOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	user := auth.User{ID: "admin", Email: h.admin.Email, Role: "admin"}
	token, exp, err := h.jwtAuth.Issue(user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "exp": exp.Unix(), "user": user})
}

func (h *Handler) Seed(c *fiber.Ctx) error {
	s := seed.NewSeeder(h.store, h.clock)
	s.Clear = c.QueryBool("clear", false)
	sum, err := s.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sum)
}

func (h *Handler) StartExport(c *fiber.Ctx) error {
	if h.exports == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "exports are not configured"})
	}
	job, err := h.exports.Start(c.UserContext(), currentUser(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	resp := fiber.Map{"jobId": job.ID.String(), "status": job.Status}

	// the request context ends with the response
	go func(j *domain.ExportJob) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := h.exports.Process(ctx, j); err != nil {
			slog.Error("export failed", "job", j.ID, "error", err)
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(resp)
}

func (h *Handler) GetExport(c *fiber.Ctx) error {
	job, err := h.exportJob(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(job)
}

func (h *Handler) DownloadExport(c *fiber.Ctx) error {
	job, err := h.exportJob(c)
	if err != nil {
		return writeError(c, err)
	}
	if job.Status != domain.ExportCompleted || job.PDFPath == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "export has no pdf", "status": job.Status})
	}
	return c.Download(job.PDFPath, "portfolio.pdf")
}

func (h *Handler) exportJob(c *fiber.Ctx) (*domain.ExportJob, error) {
	if h.exports == nil {
		return nil, domain.ErrNotFound
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return h.exports.Job(c.UserContext(), id)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
