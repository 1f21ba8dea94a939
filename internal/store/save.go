package store

import (
	"bytes"
	"encoding/json"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
)

// Save stores a copy of an existing graph under a new id of the form
// <originalId>_<YYYYMMDD>_<HHMM>. It creates static/<newId>/graph.json and an empty
// rep.json, then appends the new entry to the import map.
//
// Both halves of the stamp are taken from now in its own location. The browser client
// differs here: it takes the date in UTC and the time in local time.
//
// The steps are not transactional: a failure after the directory is created leaves
// it behind without a map entry.
func (s *Store) Save(req SaveRequest, now time.Time) (SaveResult, error) {
	if req.OriginalID == "" || falsy(req.Graph) {
		return SaveResult{}, errors.InvalidRequestf("Graph data and originalId are required")
	}
	if err := validName("originalId", req.OriginalID); err != nil {
		return SaveResult{}, err
	}
	if _, err := graphs.Parse(req.Graph); err != nil {
		return SaveResult{}, errors.Wrap(err, "graph")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.ImportMap()
	if err != nil {
		return SaveResult{}, err
	}
	original, err := find(entries, req.OriginalID)
	if err != nil {
		return SaveResult{}, errors.Mark(errors.Wrap(err, "Original graph not found"), errors.ErrNotFound)
	}

	stamp := now.Format("20060102") + "_" + now.Format("1504")
	baseName := req.Name
	if baseName == "" {
		baseName = original.Name
	}
	entry := Entry{
		ID:   req.OriginalID + "_" + stamp,
		Name: baseName + "_" + stamp,
	}
	entry.Path = path.Join(SavedDir, entry.ID)

	if slices.ContainsFunc(entries, func(e Entry) bool { return e.ID == entry.ID }) {
		return SaveResult{}, errors.WithHint(
			errors.Conflictf("graph %q already exists", entry.ID),
			"saves of the same graph are one minute apart at most",
		)
	}

	if err := writeGraphDir(s.dir(entry), req.Graph); err != nil {
		return SaveResult{}, err
	}
	if err := s.writeImportMap(append(entries, entry)); err != nil {
		return SaveResult{}, err
	}

	s.log.Infow("graph saved", "graph_id", entry.ID, "original", req.OriginalID, "path", entry.Path)
	s.publish(GraphSaved, &entry)

	return SaveResult{Success: true, ID: entry.ID, Name: entry.Name, Path: entry.Path}, nil
}

// falsy reports a missing graph: absent, null, false, "" or 0.
func falsy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", `""`:
		return true
	}
	var f float64
	return json.Unmarshal(raw, &f) == nil && f == 0
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// slug turns an uploaded file name into a graph id.
func slug(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Trim(unsafeIDChars.ReplaceAllString(base, "-"), "-")
}

// Import registers uploaded graph documents. Every field is required. Each file must
// decode as a graph; its id is derived from the file name plus the timestamp, as in
// Save. All files are checked before anything is written.
func (s *Store) Import(req ImportRequest, now time.Time) (ImportResult, error) {
	if req.Token == "" || req.Model == "" || req.Algorithm == "" || req.Language == "" || len(req.Files) == 0 {
		return ImportResult{}, errors.InvalidRequestf("Missing required fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.ImportMap()
	if err != nil {
		return ImportResult{}, err
	}

	stamp := now.Format("20060102") + "_" + now.Format("1504")
	imported := make([]Entry, 0, len(req.Files))
	for _, f := range req.Files {
		base := slug(f.Name)
		if base == "" {
			return ImportResult{}, errors.InvalidRequestf("file %q has no usable name", f.Name)
		}
		if _, err := graphs.Parse(f.Data); err != nil {
			return ImportResult{}, errors.Wrapf(err, "file %q", f.Name)
		}

		e := Entry{ID: base + "_" + stamp, Name: base}
		e.Path = path.Join(SavedDir, e.ID)
		taken := func(x Entry) bool { return x.ID == e.ID }
		if slices.ContainsFunc(entries, taken) || slices.ContainsFunc(imported, taken) {
			return ImportResult{}, errors.Conflictf("graph %q already exists", e.ID)
		}
		imported = append(imported, e)
	}

	for i, e := range imported {
		if err := writeGraphDir(s.dir(e), req.Files[i].Data); err != nil {
			return ImportResult{}, err
		}
	}
	if err := s.writeImportMap(append(entries, imported...)); err != nil {
		return ImportResult{}, err
	}

	s.log.Infow("graphs imported",
		"count", len(imported), "model", req.Model, "algorithm", req.Algorithm, "language", req.Language)
	for i := range imported {
		s.publish(GraphImported, &imported[i])
	}

	return ImportResult{Success: true, Message: "Graph imported successfully", Imported: imported}, nil
}
