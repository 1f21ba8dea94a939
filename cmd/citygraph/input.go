package main

import (
	"io"
	"os"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
)

// readInput reads the named file, or stdin for "" and "-".
func readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(os.Stdin)
		return b, errors.Wrap(err, "read stdin")
	}
	b, err := os.ReadFile(name)
	return b, errors.Wrapf(err, "read %s", name)
}

// loadGraph returns a decoded graph and its display name, either from a file or by
// id from the store.
func loadGraph(ref string, fromFile bool) (*graphs.Graph, string, error) {
	if fromFile {
		b, err := readInput(ref)
		if err != nil {
			return nil, "", err
		}
		g, err := graphs.Parse(b)
		return g, ref, err
	}

	doc, err := openStore().LoadGraph(ref)
	if err != nil {
		return nil, "", err
	}
	g, err := graphs.Parse(doc.Graph)
	if err != nil {
		return nil, "", errors.Wrapf(err, "graph %q", ref)
	}
	return g, doc.Name, nil
}
