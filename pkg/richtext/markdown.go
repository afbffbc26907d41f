package richtext

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// FromMarkdown parses CommonMark source into a document. Constructs with no
// document equivalent (thematic breaks, raw HTML) are dropped.
func FromMarkdown(src string) Document {
	source := []byte(src)
	root := markdown.Parser().Parse(text.NewReader(source))

	c := converter{source: source}
	var blocks []Node
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := c.block(n); ok {
			blocks = append(blocks, b)
		}
	}
	return newRoot(blocks)
}

type converter struct {
	source []byte
}

func (c converter) block(n ast.Node) (Node, bool) {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return newParagraph(c.inlines(n, 0)), true
	case *ast.Heading:
		h := newParagraph(c.inlines(n, 0))
		h.Type = TypeHeading
		h.Tag = fmt.Sprintf("h%d", v.Level)
		return h, true
	case *ast.Blockquote:
		q := newParagraph(c.flatten(n))
		q.Type = TypeQuote
		return q, true
	case *ast.List:
		list := newParagraph(nil)
		list.Type = TypeList
		list.ListType, list.Tag = "bullet", "ul"
		if v.IsOrdered() {
			list.ListType, list.Tag = "number", "ol"
		}
		i := 1
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			li := newParagraph(c.flatten(item))
			li.Type = TypeListItem
			li.Value = i
			list.Children = append(list.Children, li)
			i++
		}
		return list, true
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(c.source))
		}
		return newParagraph([]Node{newText(strings.TrimRight(b.String(), "\n"), FormatCode)}), true
	}
	return Node{}, false
}

// flatten collects the inline content of every paragraph below n, separating
// paragraphs with line breaks.
func (c converter) flatten(n ast.Node) []Node {
	var out []Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if len(out) > 0 {
			out = append(out, Node{Type: TypeLineBreak, Version: 1})
		}
		switch child.Kind() {
		case ast.KindParagraph, ast.KindTextBlock:
			out = append(out, c.inlines(child, 0)...)
		default:
			if b, ok := c.block(child); ok {
				out = append(out, b.Children...)
			}
		}
	}
	return out
}

func (c converter) inlines(n ast.Node, format int) []Node {
	var out []Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			out = append(out, newText(string(v.Segment.Value(c.source)), format))
			if v.HardLineBreak() {
				out = append(out, Node{Type: TypeLineBreak, Version: 1})
			} else if v.SoftLineBreak() {
				out = append(out, newText(" ", format))
			}
		case *ast.String:
			out = append(out, newText(string(v.Value), format))
		case *ast.Emphasis:
			f := FormatItalic
			if v.Level >= 2 {
				f = FormatBold
			}
			out = append(out, c.inlines(child, format|f)...)
		case *ast.CodeSpan:
			var b strings.Builder
			for t := child.FirstChild(); t != nil; t = t.NextSibling() {
				if txt, ok := t.(*ast.Text); ok {
					b.Write(txt.Segment.Value(c.source))
				}
			}
			out = append(out, newText(b.String(), format|FormatCode))
		case *ast.Link:
			out = append(out, link(string(v.Destination), c.inlines(child, format)))
		case *ast.AutoLink:
			u := string(v.URL(c.source))
			out = append(out, link(u, []Node{newText(u, format)}))
		}
	}
	return mergeText(out)
}

func link(url string, children []Node) Node {
	return Node{
		Type:     TypeLink,
		Children: children,
		Fields:   &LinkField{URL: url, LinkType: "custom"},
		Version:  1,
	}
}

// mergeText joins adjacent text nodes that share a format.
func mergeText(nodes []Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Type == TypeText && n.Type == TypeText && last.TextFormatBits() == n.TextFormatBits() {
				last.Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
