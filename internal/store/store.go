// Package store keeps graphs on disk. A data root holds import-map.json, which maps
// graph ids to directories; each directory holds graph.json, rep.json and any other
// text documents of that graph.
package store

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/logger"
)

const (
	ImportMapFile = "import-map.json"
	GraphFile     = "graph.json"
	RepFile       = "rep.json"

	// SavedDir is where saved and imported graphs are written, relative to the root.
	SavedDir = "static"
)

// Store is safe for concurrent use within one process. Writes that touch the import
// map are serialised; nothing coordinates with other processes.
type Store struct {
	root     string
	mu       sync.Mutex
	notifier Notifier
	log      *zap.SugaredLogger
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) { s.log = l }
}

func New(root string, opts ...Option) *Store {
	s := &Store{root: root, log: logger.Named("store")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) ImportMapPath() string {
	return filepath.Join(s.root, ImportMapFile)
}

// ImportMap reads import-map.json. A missing file is an empty map.
func (s *Store) ImportMap() ([]Entry, error) {
	b, err := os.ReadFile(s.ImportMapPath())
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read import map")
	}

	entries := []Entry{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "parse import map"), "import-map.json must be a JSON array of {id, name, path}")
	}
	return entries, nil
}

// Lookup finds the entry for id.
func (s *Store) Lookup(id string) (Entry, error) {
	if err := validName("graph id", id); err != nil {
		return Entry{}, err
	}
	entries, err := s.ImportMap()
	if err != nil {
		return Entry{}, err
	}
	return find(entries, id)
}

func find(entries []Entry, id string) (Entry, error) {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return Entry{}, errors.NotFoundf("graph %q not in import map", id)
	}
	return entries[i], nil
}

func (s *Store) dir(e Entry) string {
	return filepath.Join(s.root, filepath.FromSlash(e.Path))
}

// LoadGraph returns the stored graph document of id, undecoded.
func (s *Store) LoadGraph(id string) (GraphDoc, error) {
	e, err := s.Lookup(id)
	if err != nil {
		return GraphDoc{}, err
	}

	b, err := readFile(filepath.Join(s.dir(e), GraphFile))
	if err != nil {
		return GraphDoc{}, err
	}
	if !json.Valid(b) {
		return GraphDoc{}, errors.Newf("graph %q: %s is not valid JSON", id, GraphFile)
	}
	return GraphDoc{Name: e.Name, Graph: b}, nil
}

// LoadText returns text document tid of graph gid. A trailing ".json" on tid is
// ignored. A document holding an object rather than an array, such as the rep.json
// written by Save, has no texts.
func (s *Store) LoadText(gid, tid string) (TextDoc, error) {
	tid = strings.Replace(tid, ".json", "", 1)
	if err := validName("text id", tid); err != nil {
		return TextDoc{}, err
	}
	e, err := s.Lookup(gid)
	if err != nil {
		return TextDoc{}, err
	}

	b, err := readFile(filepath.Join(s.dir(e), tid+".json"))
	if err != nil {
		return TextDoc{}, err
	}
	texts, err := decodeTexts(b)
	if err != nil {
		return TextDoc{}, errors.Wrapf(err, "text %s/%s", gid, tid)
	}
	return TextDoc{Name: e.Name, Text: texts}, nil
}

func decodeTexts(b []byte) ([]Text, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return []Text{}, nil
	}
	texts := []Text{}
	if err := json.Unmarshal(b, &texts); err != nil {
		return nil, errors.Wrap(err, "parse texts")
	}
	return texts, nil
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Mark(errors.Wrapf(err, "read %s", path), errors.ErrNotFound)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return b, nil
}

// validName rejects ids that are empty or could escape the data root.
func validName(what, name string) error {
	switch {
	case name == "":
		return errors.InvalidRequestf("%s is required", what)
	case name == "." || strings.Contains(name, ".."):
		return errors.InvalidRequestf("%s %q is not allowed", what, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return errors.InvalidRequestf("%s %q must not contain path separators", what, name)
	}
	return nil
}

// writeImportMap replaces import-map.json. Callers hold s.mu.
func (s *Store) writeImportMap(entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode import map")
	}
	return writeFileAtomic(s.ImportMapPath(), b)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "write %s", path)
}

// writeGraphDir creates dir with an indented graph.json and an empty rep.json.
func writeGraphDir(dir string, graph json.RawMessage) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, graph, "", "  "); err != nil {
		return errors.Mark(errors.Wrap(err, "graph is not valid JSON"), errors.ErrInvalidRequest)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	if err := os.WriteFile(filepath.Join(dir, GraphFile), indented.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", GraphFile)
	}
	if err := os.WriteFile(filepath.Join(dir, RepFile), []byte("{}"), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", RepFile)
	}
	return nil
}

func (s *Store) publish(t EventType, e *Entry) {
	if s.notifier != nil {
		s.notifier.Publish(Event{Type: t, Entry: e, Time: time.Now()})
	}
}
