package richtext

import "strings"

// FromPlainText builds a document with one paragraph per non-empty line.
func FromPlainText(text string) Document {
	lines := strings.Split(text, "\n")
	paragraphs := make([]Node, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		paragraphs = append(paragraphs, newParagraph([]Node{newText(line, 0)}))
	}
	return newRoot(paragraphs)
}
