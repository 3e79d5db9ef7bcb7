// Package web provides an HTTP server previewing rendered documentation.
//
// The server renders the configured C sources as one HTML page, exposes the
// extracted documents as JSON and, with watching enabled, re-parses the files
// when they change and notifies connected browsers through Server-Sent Events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// Only the files given to New can be read through the API.
package web

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/formatter"
	"github.com/robinvdvleuten/cdoc/loader"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	// Loader reads and parses the served files. Defaults to loader.New().
	Loader *loader.Loader
	// Formatter renders the preview page. Defaults to formatter.New().
	Formatter *formatter.Formatter

	// inputFiles are the file paths passed to New, used only for initial loading.
	// After loading, files contains the resolved absolute paths.
	inputFiles []string

	mu      sync.RWMutex
	files   []string    // Absolute paths of the served files
	parsed  []*ast.File // Documents of every file, in order
	sources [][]byte    // Content of every file, in order
	loadErr error       // First failure of the last load, if any

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, files []string) *Server {
	return NewWithVersion(port, files, "", "")
}

func NewWithVersion(port int, files []string, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		inputFiles: files,
		sseClients: make(map[chan string]struct{}),
	}
}

// Start loads the files and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if len(s.inputFiles) == 0 {
		timer.End()
		return fmt.Errorf("at least one file is required")
	}

	if err := s.resolveFiles(); err != nil {
		timer.End()
		return err
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load %d files", len(s.files)))
	s.reload(ctx)
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	mux := s.setupRouter()
	setupTimer.End()
	timer.End()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/documents", s.handleGetDocuments)
	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

func (s *Server) resolveFiles() error {
	files := make([]string, 0, len(s.inputFiles))
	for _, file := range s.inputFiles {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path for %s: %w", file, err)
		}
		files = append(files, abs)
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()

	return nil
}

func (s *Server) loader() *loader.Loader {
	if s.Loader == nil {
		return loader.New()
	}
	return s.Loader
}

func (s *Server) formatter() *formatter.Formatter {
	if s.Formatter == nil {
		return formatter.New()
	}
	return s.Formatter
}

// reload reads and parses every file again. A failure is kept and shown by the
// preview instead of stopping the server.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reload(ctx context.Context) {
	s.mu.RLock()
	files := s.files
	s.mu.RUnlock()

	ldr := s.loader()

	var parsed []*ast.File
	var sources [][]byte
	var loadErr error

	for _, name := range files {
		src, err := ldr.Read(ctx, name)
		if err != nil {
			loadErr = err
			break
		}
		sources = append(sources, src.Data)

		file, err := ldr.LoadBytes(ctx, src.Filename, src.Data)
		if err != nil {
			loadErr = err
			break
		}
		parsed = append(parsed, file)
	}

	if loadErr != nil {
		zerolog.Ctx(ctx).Warn().Err(loadErr).Msg("failed to load documentation")
	}

	s.mu.Lock()
	s.parsed = parsed
	s.sources = sources
	s.loadErr = loadErr
	s.mu.Unlock()
}

// startWatcher starts a file watcher for the served files. It reloads them and
// broadcasts SSE events when they change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.mu.RLock()
	files := s.files
	s.mu.RUnlock()

	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", file).Msg("failed to watch file")
		}
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			zerolog.Ctx(ctx).Warn().Err(err).Msg("file watcher error")
		}
	}
}

// handleFileChange reloads the files and re-adds their watches, since atomic
// saves replace the watched inode.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	s.reload(ctx)

	s.mu.RLock()
	files := s.files
	s.mu.RUnlock()

	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", file).Msg("failed to watch file")
		}
	}

	zerolog.Ctx(ctx).Info().Int("files", len(files)).Msg("reloaded documentation")

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
