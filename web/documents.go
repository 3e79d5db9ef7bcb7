package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/errors"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type DocumentsResponse struct {
	Files  []FileJSON         `json:"files"`
	Errors []errors.ErrorJSON `json:"errors"`
}

type FileJSON struct {
	Filename  string         `json:"filename"`
	Documents []DocumentJSON `json:"documents"`
}

type DocumentJSON struct {
	Line     int           `json:"line"`
	Kind     string        `json:"kind"`
	Sections []SectionJSON `json:"sections"`
	Source   []string      `json:"source,omitempty"`
}

type SectionJSON struct {
	Line int      `json:"line"`
	Tag  string   `json:"tag"`
	Name string   `json:"name"`
	Body []string `json:"body"`
}

func newFileJSON(file *ast.File) FileJSON {
	result := FileJSON{
		Filename:  file.Filename,
		Documents: make([]DocumentJSON, 0, len(file.Documents)),
	}

	for _, doc := range file.Documents {
		d := DocumentJSON{
			Line:     doc.Pos.Line,
			Kind:     doc.Kind().String(),
			Sections: make([]SectionJSON, 0, len(doc.Sections)),
			Source:   doc.SourceText(),
		}
		for _, section := range doc.Sections {
			d.Sections = append(d.Sections, SectionJSON{
				Line: section.Pos.Line,
				Tag:  section.Tag,
				Name: section.Name,
				Body: section.Body,
			})
		}
		result.Documents = append(result.Documents, d)
	}

	return result
}

// handleGetDocuments handles GET requests to /api/documents.
// Returns the extracted documents of every file and the load error, if any.
func (s *Server) handleGetDocuments(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	response := DocumentsResponse{
		Files:  make([]FileJSON, 0, len(s.parsed)),
		Errors: []errors.ErrorJSON{},
	}
	for _, file := range s.parsed {
		response.Files = append(response.Files, newFileJSON(file))
	}
	if s.loadErr != nil {
		response.Errors = []errors.ErrorJSON{errors.NewJSONFormatter().ToJSON(s.loadErr)}
	}
	s.mu.RUnlock()

	writeJSONResponse(w, response)
}

type SourceResponse struct {
	Filepath string `json:"filepath"`
	Source   string `json:"source"`
}

// handleGetSource handles GET requests to /api/source.
// Only the served files can be read; the default is the first one.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filename := r.URL.Query().Get("filepath")
	if filename == "" && len(s.files) > 0 {
		filename = s.files[0]
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		http.Error(w, "invalid filepath", http.StatusBadRequest)
		return
	}

	i := slices.Index(s.files, abs)
	if i < 0 {
		http.Error(w, "access denied: file is not served", http.StatusBadRequest)
		return
	}
	if i >= len(s.sources) {
		http.Error(w, "File not loaded", http.StatusNotFound)
		return
	}

	writeJSONResponse(w, &SourceResponse{
		Filepath: abs,
		Source:   string(s.sources[i]),
	})
}

// handleIndex renders the preview page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := s.formatter()

	s.mu.RLock()
	data := indexData{Version: s.version()}
	for _, file := range s.parsed {
		var buf bytes.Buffer
		if err := f.Format(r.Context(), file, &buf); err != nil {
			s.mu.RUnlock()
			http.Error(w, "Failed to render documentation", http.StatusInternalServerError)
			return
		}
		data.Files = append(data.Files, indexFile{
			Filename: file.Filename,
			HTML:     template.HTML(buf.String()),
		})
	}
	if s.loadErr != nil {
		data.Error = s.renderError()
	}
	s.mu.RUnlock()

	var page bytes.Buffer
	if err := indexTemplate.Execute(&page, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

// renderError formats the load error with the source of the failing file.
// Must be called with s.mu held for reading.
func (s *Server) renderError() string {
	var opts []errors.TextFormatterOption
	if i := len(s.parsed); i < len(s.sources) {
		opts = append(opts, errors.WithSource(s.sources[i]))
	}
	return errors.NewTextFormatter(s.formatter(), opts...).Format(s.loadErr)
}

func (s *Server) version() string {
	if s.CommitSHA == "" {
		return s.Version
	}
	return s.Version + " (" + s.CommitSHA + ")"
}
