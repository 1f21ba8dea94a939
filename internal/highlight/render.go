package highlight

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render returns text as HTML with every merged span wrapped in <mark>. Spans are
// clamped to the text; text outside them is escaped as-is.
func Render(text string, spans []Interval) (string, error) {
	runes := []rune(text)
	root := &html.Node{Type: html.DocumentNode}

	pos := 0
	if len(spans) > 0 {
		merged, err := MergeValues(spans)
		if err != nil {
			return "", err
		}
		for _, span := range merged {
			start, end := clamp(span.Start, len(runes)), clamp(span.End(), len(runes))
			if end <= start || start < pos {
				continue
			}
			appendText(root, string(runes[pos:start]))

			mark := &html.Node{Type: html.ElementNode, DataAtom: atom.Mark, Data: "mark"}
			appendText(mark, string(runes[start:end]))
			root.AppendChild(mark)
			pos = end
		}
	}
	appendText(root, string(runes[pos:]))

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendText(parent *html.Node, s string) {
	if s == "" {
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

func clamp(v, n int) int {
	return min(max(v, 0), n)
}
