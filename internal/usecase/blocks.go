package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/pkg/richtext"
)

// ErrUnknownBlock is returned when a page names a block type with no
// renderer.
var ErrUnknownBlock = errors.New("unknown block type")

// defaultComponentLimit applies when a block is rendered without a limit.
const defaultComponentLimit = 100

//go:embed templates/*.html
var templateFS embed.FS

var richTextRenderer = richtext.NewHTMLRenderer()

var blockTemplates = template.Must(template.New("blocks").Funcs(template.FuncMap{
	"date":           func(d domain.Date) string { return FormatDate(&d) },
	"experienceEnd":  ExperienceEnd,
	"educationEnd":   EducationEnd,
	"width":          ProficiencyWidth,
	"label":          ProficiencyLabel,
	"resolvedSkills": ResolvedSkills,
	"linkLabel":      LinkLabel,
	"richText": func(doc richtext.Document) template.HTML {
		return richTextRenderer.Render(doc, false)
	},
}).ParseFS(templateFS, "templates/*.html"))

// BlockProps are the editor-supplied options of a block instance.
type BlockProps struct {
	Title string
	Limit int
}

func (p BlockProps) limit() int {
	if p.Limit <= 0 {
		return defaultComponentLimit
	}
	return p.Limit
}

type blockView struct {
	Title string
	Items interface{}
}

// Blocks renders one collection per block into an HTML fragment. Every call
// reads the store; nothing is cached.
type Blocks struct {
	content *Content
}

func NewBlocks(content *Content) *Blocks {
	return &Blocks{content: content}
}

func (b *Blocks) Experience(ctx context.Context, props BlockProps) (template.HTML, error) {
	items, err := b.content.FindExperiences(ctx, domain.Query{Limit: props.limit(), Sort: "-start_date", Depth: 2})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return execute("experience", blockView{Title: props.Title, Items: items})
}

func (b *Blocks) Education(ctx context.Context, props BlockProps) (template.HTML, error) {
	items, err := b.content.FindEducations(ctx, domain.Query{Limit: props.limit(), Sort: "-start_date"})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return execute("education", blockView{Title: props.Title, Items: items})
}

func (b *Blocks) Skills(ctx context.Context, props BlockProps) (template.HTML, error) {
	items, err := b.content.FindSkills(ctx, domain.Query{Limit: props.limit(), Sort: "name"})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return execute("skills", blockView{Title: props.Title, Items: items})
}

func (b *Blocks) Languages(ctx context.Context, props BlockProps) (template.HTML, error) {
	items, err := b.content.FindLanguages(ctx, domain.Query{Limit: props.limit()})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return execute("languages", blockView{Title: props.Title, Items: items})
}

func (b *Blocks) Learning(ctx context.Context, props BlockProps) (template.HTML, error) {
	items, err := b.content.FindLearnings(ctx, domain.Query{Limit: props.limit()})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	return execute("learning", blockView{Title: props.Title, Items: items})
}

// Render dispatches a configured block to its renderer.
func (b *Blocks) Render(ctx context.Context, cfg model.BlockConfig) (template.HTML, error) {
	props := BlockProps{Title: cfg.Title, Limit: cfg.Limit}
	switch cfg.BlockType {
	case "experience":
		return b.Experience(ctx, props)
	case "education":
		return b.Education(ctx, props)
	case "skills":
		return b.Skills(ctx, props)
	case "languages":
		return b.Languages(ctx, props)
	case "learning":
		return b.Learning(ctx, props)
	}
	return "", fmt.Errorf("%q: %w", cfg.BlockType, ErrUnknownBlock)
}

func execute(name string, data blockView) (template.HTML, error) {
	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s block: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
