package markdown

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/psidex/citygraph/internal/errors"
)

// allowed maps each permitted element to its permitted attributes.
var allowed = map[atom.Atom][]string{
	atom.A:          {"href", "title"},
	atom.Abbr:       {"title"},
	atom.B:          nil,
	atom.Blockquote: nil,
	atom.Br:         nil,
	atom.Code:       {"class"},
	atom.Del:        nil,
	atom.Em:         nil,
	atom.H1:         nil,
	atom.H2:         nil,
	atom.H3:         nil,
	atom.H4:         nil,
	atom.H5:         nil,
	atom.H6:         nil,
	atom.Hr:         nil,
	atom.I:          nil,
	atom.Img:        {"src", "alt", "title"},
	atom.Input:      {"type", "checked", "disabled"},
	atom.Li:         nil,
	atom.Mark:       nil,
	atom.Ol:         {"start"},
	atom.P:          nil,
	atom.Pre:        nil,
	atom.S:          nil,
	atom.Span:       nil,
	atom.Strong:     nil,
	atom.Sub:        nil,
	atom.Sup:        nil,
	atom.Table:      nil,
	atom.Tbody:      nil,
	atom.Td:         {"align"},
	atom.Th:         {"align"},
	atom.Thead:      nil,
	atom.Tr:         nil,
	atom.U:          nil,
	atom.Ul:         nil,
}

// dropped elements go with everything inside them; other unknown elements are
// replaced by their children.
var dropped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Form:     true,
	atom.Textarea: true,
	atom.Select:   true,
	atom.Button:   true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Math:     true,
}

var safeSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// Sanitize parses an HTML fragment and re-renders it keeping only allow-listed
// elements and attributes. Links and images must point at http, https or mailto URLs,
// or be relative.
func Sanitize(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", errors.Wrap(err, "parse html")
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	clean(root)

	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", errors.Wrap(err, "render html")
		}
	}
	return sb.String(), nil
}

func clean(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		switch c.Type {
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		case html.ElementNode:
			attrs, ok := allowed[c.DataAtom]
			switch {
			case dropped[c.DataAtom]:
				n.RemoveChild(c)
			case !ok || (c.DataAtom == atom.Input && attr(c, "type") != "checkbox"):
				clean(c)
				unwrap(n, c)
			default:
				c.Attr = filterAttrs(c.Attr, attrs)
				clean(c)
			}
		}

		c = next
	}
}

// unwrap moves c's children into n where c was, then removes c.
func unwrap(n, c *html.Node) {
	for gc := c.FirstChild; gc != nil; gc = c.FirstChild {
		c.RemoveChild(gc)
		n.InsertBefore(gc, c)
	}
	n.RemoveChild(c)
}

func filterAttrs(in []html.Attribute, keep []string) []html.Attribute {
	out := []html.Attribute{}
	for _, a := range in {
		if a.Namespace != "" || !contains(keep, a.Key) {
			continue
		}
		if (a.Key == "href" || a.Key == "src") && !safeURL(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func safeURL(raw string) bool {
	// Browsers ignore control characters and spaces inside a scheme, so
	// "java\tscript:" must be judged without them.
	stripped := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, raw)

	u, err := url.Parse(stripped)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return !strings.Contains(strings.SplitN(stripped, "/", 2)[0], ":")
	}
	return safeSchemes[strings.ToLower(u.Scheme)]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.ToLower(a.Val)
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
