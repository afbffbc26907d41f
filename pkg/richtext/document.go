package richtext

import "strings"

// Node types used by the document tree. The JSON shape matches the editor
// state stored by the admin, so documents round-trip without conversion.
const (
	TypeRoot      = "root"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeQuote     = "quote"
	TypeList      = "list"
	TypeListItem  = "listitem"
	TypeText      = "text"
	TypeLineBreak = "linebreak"
	TypeLink      = "link"
)

// Text format bit flags.
const (
	FormatBold          = 1
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
)

// Document is a structured rich text value: root -> blocks -> inline nodes.
type Document struct {
	Root Node `json:"root"`
}

// Node is one element of the tree. Only the fields relevant to Type are set.
type Node struct {
	Type       string     `json:"type"`
	Children   []Node     `json:"children,omitempty"`
	Text       string     `json:"text,omitempty"`
	Detail     int        `json:"detail,omitempty"`
	Format     any        `json:"format,omitempty"`
	Mode       string     `json:"mode,omitempty"`
	Style      string     `json:"style,omitempty"`
	Direction  string     `json:"direction,omitempty"`
	Indent     int        `json:"indent,omitempty"`
	TextFormat int        `json:"textFormat,omitempty"`
	Tag        string     `json:"tag,omitempty"`
	ListType   string     `json:"listType,omitempty"`
	Value      int        `json:"value,omitempty"`
	Fields     *LinkField `json:"fields,omitempty"`
	Version    int        `json:"version"`
}

// LinkField carries the target of a link node.
type LinkField struct {
	URL      string `json:"url"`
	NewTab   bool   `json:"newTab,omitempty"`
	LinkType string `json:"linkType,omitempty"`
}

// IsEmpty reports whether the document has no block content.
func (d Document) IsEmpty() bool {
	return len(d.Root.Children) == 0
}

// PlainText flattens the document into newline separated blocks.
func (d Document) PlainText() string {
	lines := make([]string, 0, len(d.Root.Children))
	for _, block := range d.Root.Children {
		lines = append(lines, block.plainText())
	}
	return strings.Join(lines, "\n")
}

func (n Node) plainText() string {
	if n.Type == TypeText {
		return n.Text
	}
	if n.Type == TypeLineBreak {
		return "\n"
	}
	var b strings.Builder
	for i, c := range n.Children {
		if n.Type == TypeList && i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.plainText())
	}
	return b.String()
}

// TextFormatBits returns the inline format of a text node. Block nodes store
// format as an alignment string, text nodes as a bit set.
func (n Node) TextFormatBits() int {
	switch v := n.Format.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func newRoot(children []Node) Document {
	return Document{Root: Node{
		Type:      TypeRoot,
		Children:  children,
		Direction: "ltr",
		Format:    "",
		Version:   1,
	}}
}

func newParagraph(children []Node) Node {
	return Node{
		Type:      TypeParagraph,
		Children:  children,
		Direction: "ltr",
		Format:    "",
		Version:   1,
	}
}

func newText(text string, format int) Node {
	return Node{
		Type:    TypeText,
		Text:    text,
		Format:  format,
		Mode:    "normal",
		Version: 1,
	}
}
