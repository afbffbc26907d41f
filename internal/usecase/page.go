package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"portfolio-site/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed templates/layout.yaml
var defaultLayout []byte

//go:embed templates/style.css
var stylesheet string

// Layout is the ordered list of blocks that make up the page.
type Layout struct {
	Title  string              `yaml:"title"`
	Intro  string              `yaml:"intro,omitempty"`
	Blocks []model.BlockConfig `yaml:"blocks"`
}

// LoadLayout reads a YAML layout from path, or the built-in layout when path
// is empty. Block configs are normalized.
func LoadLayout(path string) (Layout, error) {
	raw := defaultLayout
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Layout{}, fmt.Errorf("read layout: %w", err)
		}
		raw = b
	}
	return ParseLayout(raw)
}

func ParseLayout(raw []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	for i, b := range l.Blocks {
		if _, ok := model.LookupBlock(b.BlockType); !ok {
			return Layout{}, fmt.Errorf("layout block %d %q: %w", i, b.BlockType, ErrUnknownBlock)
		}
		l.Blocks[i] = b.Normalize()
	}
	return l, nil
}

// Stylesheet is the page CSS.
func Stylesheet() string { return stylesheet }

// Page composes the configured blocks into one HTML document.
type Page struct {
	blocks *Blocks
	layout Layout
}

func NewPage(blocks *Blocks, layout Layout) *Page {
	return &Page{blocks: blocks, layout: layout}
}

func (p *Page) Layout() Layout { return p.layout }

type pageView struct {
	Title    string
	Intro    string
	CSS      template.CSS
	Sections []template.HTML
}

// Sections renders every block of the layout, skipping empty ones.
func (p *Page) Sections(ctx context.Context) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(p.layout.Blocks))
	for _, cfg := range p.layout.Blocks {
		html, err := p.blocks.Render(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if html != "" {
			out = append(out, html)
		}
	}
	return out, nil
}

// Render renders the full page. With inlineCSS the stylesheet is embedded in
// the document, which standalone exports need; otherwise it is linked.
func (p *Page) Render(ctx context.Context, inlineCSS bool) (string, error) {
	sections, err := p.Sections(ctx)
	if err != nil {
		return "", err
	}
	view := pageView{Title: p.layout.Title, Intro: p.layout.Intro, Sections: sections}
	if inlineCSS {
		view.CSS = template.CSS(stylesheet)
	}
	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, "page", view); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
