package graphs

import (
	"encoding/json"
	"io"
	"os"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/style"
)

// Renderer turns a normalized Graph into a document a frontend can open on its own.
type Renderer interface {
	// Render is safe to call from many goroutines; each call starts from a clean state.
	Render(w io.Writer, g *Graph) error

	// Ext is the file extension RenderToFile adds, without the dot.
	Ext() string

	ContentType() string
}

// RenderOptions are shared by every Renderer.
type RenderOptions struct {
	Title     string
	Theme     style.Theme
	Selection style.Selection
}

func (o RenderOptions) title() string {
	if o.Title == "" {
		return "citygraph"
	}
	return o.Title
}

func (o RenderOptions) nodeStyle(n *Node) style.NodeOptions {
	var color string
	var size float64
	if n.Data != nil {
		color, size = n.Data.Color, n.Data.Size
	}
	return style.Node(color, size, o.Selection.HasNode(n.ID.Key()), o.Theme)
}

func (o RenderOptions) linkStyle(l *Link) style.LinkOptions {
	if l.Data == nil {
		return style.Link("", false, o.Theme)
	}
	id, ok := l.Data.ID.Int()
	return style.Link(l.Data.Color, ok && o.Selection.HasLink(id), o.Theme)
}

// NodeStyle and LinkStyle expose the styling rules to renderers outside this package.
func (o RenderOptions) NodeStyle(n *Node) style.NodeOptions { return o.nodeStyle(n) }
func (o RenderOptions) LinkStyle(l *Link) style.LinkOptions { return o.linkStyle(l) }
func (o RenderOptions) PageTitle() string                   { return o.title() }

// RenderToFile renders g into filename plus the renderer's extension and returns the
// path written. filename should be the desired file name without an extension.
func RenderToFile(r Renderer, g *Graph, filename string) (string, error) {
	path := filename + "." + r.Ext()

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := r.Render(f, g); err != nil {
		return "", errors.Wrapf(err, "render %s", path)
	}
	return path, f.Close()
}

// Document renders the normalized graph itself as JSON.
type Document struct {
	Indent bool
}

var _ Renderer = Document{}

func (d Document) Render(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	if d.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(g)
}

func (Document) Ext() string         { return "json" }
func (Document) ContentType() string { return "application/json" }
