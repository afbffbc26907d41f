package richtext

import (
	"html"
	"html/template"
	"net/url"
	"strings"
)

// HTMLRenderer turns documents into escaped HTML markup.
type HTMLRenderer struct {
	// Class is added to the wrapping element.
	Class string
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{Class: "rich-text"}
}

// Render writes the document as HTML. With enableGutter the content is wrapped
// in a padded container, otherwise it is emitted edge to edge.
func (r *HTMLRenderer) Render(doc Document, enableGutter bool) template.HTML {
	if doc.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(html.EscapeString(r.classes(enableGutter)))
	b.WriteString(`">`)
	for _, n := range doc.Root.Children {
		writeNode(&b, n)
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

func (r *HTMLRenderer) classes(gutter bool) string {
	c := r.Class
	if gutter {
		c = strings.TrimSpace(c + " container")
	}
	return c
}

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

func writeNode(b *strings.Builder, n Node) {
	switch n.Type {
	case TypeParagraph:
		wrap(b, "p", n.Children)
	case TypeHeading:
		tag := n.Tag
		if !headingTags[tag] {
			tag = "h3"
		}
		wrap(b, tag, n.Children)
	case TypeQuote:
		wrap(b, "blockquote", n.Children)
	case TypeList:
		tag := "ul"
		if n.ListType == "number" {
			tag = "ol"
		}
		wrap(b, tag, n.Children)
	case TypeListItem:
		wrap(b, "li", n.Children)
	case TypeLineBreak:
		b.WriteString("<br>")
	case TypeLink:
		href := ""
		if n.Fields != nil {
			href = safeURL(n.Fields.URL)
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`"`)
		if n.Fields != nil && n.Fields.NewTab {
			b.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		b.WriteString(`>`)
		for _, c := range n.Children {
			writeNode(b, c)
		}
		b.WriteString(`</a>`)
	case TypeText:
		writeText(b, n)
	default:
		for _, c := range n.Children {
			writeNode(b, c)
		}
	}
}

func wrap(b *strings.Builder, tag string, children []Node) {
	b.WriteString("<" + tag + ">")
	for _, c := range children {
		writeNode(b, c)
	}
	b.WriteString("</" + tag + ">")
}

var formatTags = []struct {
	bit int
	tag string
}{
	{FormatCode, "code"},
	{FormatBold, "strong"},
	{FormatItalic, "em"},
	{FormatUnderline, "u"},
	{FormatStrikethrough, "s"},
}

func writeText(b *strings.Builder, n Node) {
	bits := n.TextFormatBits()
	var open []string
	for _, f := range formatTags {
		if bits&f.bit != 0 {
			b.WriteString("<" + f.tag + ">")
			open = append(open, f.tag)
		}
	}
	b.WriteString(html.EscapeString(n.Text))
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
}

// safeURL drops hrefs with schemes that could execute script.
func safeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return u.String()
	}
	return "#"
}
