package webserver

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/graphs/export"
	"github.com/psidex/citygraph/internal/highlight"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/markdown"
	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/style"
)

const fileReadError = "File read error"

func (s *Server) handleImportMap(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ImportMap()
	if err != nil {
		writeStoreError(w, logger.FromContext(r.Context(), s.log), err, fileReadError)
		return
	}
	_ = writeJSON(w, http.StatusOK, entries)
}

// loadNormalized reads a stored graph, decodes it and runs the normalizer over it.
func (s *Server) loadNormalized(id string) (string, *graphs.Graph, error) {
	doc, err := s.store.LoadGraph(id)
	if err != nil {
		return "", nil, err
	}
	g, err := graphs.Parse(doc.Graph)
	if err != nil {
		return "", nil, errors.Wrapf(err, "graph %q", id)
	}
	s.metrics.observeNormalize(g.Normalize())
	return doc.Name, g, nil
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), s.log).With(logger.FieldGraphID, r.PathValue("id"))

	if !truthyParam(r.URL.Query().Get("normalize")) {
		doc, err := s.store.LoadGraph(r.PathValue("id"))
		if err != nil {
			writeStoreError(w, log, err, fileReadError)
			return
		}
		_ = writeJSON(w, http.StatusOK, doc)
		return
	}

	name, g, err := s.loadNormalized(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, log, err, fileReadError)
		return
	}
	_ = writeJSON(w, http.StatusOK, graphResponse{Name: name, Graph: g})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), s.log).With(logger.FieldGraphID, r.PathValue("id"))

	opts, err := renderOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, g, err := s.loadNormalized(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, log, err, fileReadError)
		return
	}
	if opts.Title == "" {
		opts.Title = name
	}

	renderer, err := export.New(r.PathValue("format"), opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, g); err != nil {
		writeStoreError(w, log, err, "Render error")
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = buf.WriteTo(w)
}

// renderOptions reads ?theme=, ?selected=a,b and ?link=<id>.
func renderOptions(r *http.Request) (graphs.RenderOptions, error) {
	q := r.URL.Query()
	o := graphs.RenderOptions{
		Title: q.Get("title"),
		Theme: style.ParseTheme(q.Get("theme")),
	}

	var link *int
	if raw := q.Get("link"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return o, errors.InvalidRequestf("link must be an integer, got %q", raw)
		}
		link = &id
	}
	o.Selection = style.NewSelection(splitList(q.Get("selected")), link)
	return o, nil
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req store.SaveRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	res, err := s.store.Save(req, s.now())
	s.metrics.observeWrite("save", err)
	if err != nil {
		writeStoreError(w, logger.FromContext(r.Context(), s.log), err, "Failed to save graph")
		return
	}
	_ = writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	g, err := graphs.Decode(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.observeNormalize(g.Normalize())
	_ = writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), s.log).With(
		logger.FieldGraphID, r.PathValue("gid"),
		logger.FieldTextID, r.PathValue("tid"),
	)

	doc, err := s.store.LoadText(r.PathValue("gid"), r.PathValue("tid"))
	if err != nil {
		writeStoreError(w, log, err, fileReadError)
		return
	}

	resp := textResponse{TextDoc: doc}
	if terms := highlight.ParseTerms(r.URL.Query().Get("q")); len(terms) > 0 {
		for _, t := range doc.Text {
			found := highlight.Find(t.Text, terms)
			if len(found) == 0 {
				continue
			}
			merged, err := highlight.MergeValues(found)
			if err != nil {
				writeStoreError(w, log, err, "Highlight error")
				return
			}
			marked, err := highlight.Render(t.Text, merged)
			if err != nil {
				writeStoreError(w, log, err, "Highlight error")
				return
			}
			resp.Highlights = append(resp.Highlights, textHighlight{PID: t.PID, Intervals: merged, HTML: marked})
		}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	spans := append([]highlight.Interval(nil), req.Intervals...)
	if req.Text != "" && len(req.Terms) > 0 {
		spans = append(spans, highlight.Find(req.Text, req.Terms)...)
	}

	merged, err := highlight.MergeValues(spans)
	if err != nil {
		writeStoreError(w, logger.FromContext(r.Context(), s.log), err, "Highlight error")
		return
	}

	resp := highlightResponse{Intervals: merged, Covered: highlight.Covered(merged)}
	if req.Text != "" {
		if resp.HTML, err = highlight.Render(req.Text, merged); err != nil {
			writeStoreError(w, logger.FromContext(r.Context(), s.log), err, "Highlight error")
			return
		}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	out, err := markdown.Format(req.Text)
	if err != nil {
		writeStoreError(w, logger.FromContext(r.Context(), s.log), err, "Markdown error")
		return
	}
	_ = writeJSON(w, http.StatusOK, markdownResponse{HTML: out})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), s.log)

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := store.ImportRequest{
		Token:     r.FormValue("token"),
		Model:     r.FormValue("model"),
		Algorithm: r.FormValue("algorithm"),
		Language:  r.FormValue("language"),
	}

	headers := append(r.MultipartForm.File["files"], r.MultipartForm.File["files[]"]...)
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			writeStoreError(w, log, err, "Failed to read upload")
			return
		}
		req.Files = append(req.Files, store.UploadedFile{Name: fh.Filename, Data: data})
	}

	res, err := s.store.Import(req, s.now())
	s.metrics.observeWrite("import", err)
	if err != nil {
		writeStoreError(w, log, err, "Failed to import graph")
		return
	}
	_ = writeJSON(w, http.StatusOK, res)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open upload %q", fh.Filename)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Clients: s.hub.Clients()})
}

func truthyParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
