package store

import (
	"encoding/json"
	"time"
)

// Entry is one line of import-map.json.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type GraphDoc struct {
	Name  string          `json:"name"`
	Graph json.RawMessage `json:"graph"`
}

type Text struct {
	PID  int    `json:"pid"`
	Text string `json:"text"`
}

type TextDoc struct {
	Name string `json:"name"`
	Text []Text `json:"text"`
}

type SaveRequest struct {
	OriginalID string          `json:"originalId"`
	Graph      json.RawMessage `json:"graph"`
	Name       string          `json:"name,omitempty"`
}

type SaveResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
}

type UploadedFile struct {
	Name string
	Data []byte
}

type ImportRequest struct {
	Token     string
	Model     string
	Algorithm string
	Language  string
	Files     []UploadedFile
}

type ImportResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Imported []Entry `json:"imported"`
}

type EventType string

const (
	GraphSaved       EventType = "graph_saved"
	GraphImported    EventType = "graph_imported"
	ImportMapChanged EventType = "import_map_changed"
)

// Event describes a change to the data root.
type Event struct {
	Type  EventType `json:"type"`
	Entry *Entry    `json:"entry,omitempty"`
	Time  time.Time `json:"time"`
}

// Notifier receives store events. Publish must not block for long.
type Notifier interface {
	Publish(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Publish(e Event) { f(e) }
