// Package markdown renders node texts written in Markdown to HTML that is safe to
// embed in a page.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/psidex/citygraph/internal/errors"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
		gmhtml.WithUnsafe(),
	),
)

// Format converts Markdown to sanitised HTML. Raw HTML inside the Markdown is kept
// when it is on the allow-list and dropped otherwise.
func Format(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return Sanitize(buf.String())
}
