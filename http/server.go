package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultAddr is the address Server listens on when Addr is empty.
const DefaultAddr = "127.0.0.1:8731"

// maxRequestBytes caps the JSON body accepted by /convert.
const maxRequestBytes = 16 << 20

// ConvertRequest is the body of POST /convert. When HTML is empty the page
// is loaded from URL; Title, if set, replaces the page title.
type ConvertRequest struct {
	Action string `json:"action"`
	URL    string `json:"url"`
	HTML   string `json:"html,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Server exposes conversion over HTTP.
type Server struct {
	Addr      string
	Handler   mdclip.RequestHandler
	Loader    mdclip.PageLoader
	ParsePage func(url, rawHTML string) (*mdclip.Page, error)
	Logger    *slog.Logger

	router   chi.Router
	initOnce sync.Once
	ln       net.Listener
	server   *http.Server
}

// NewServer creates a new Server.
func NewServer(handler mdclip.RequestHandler, loader mdclip.PageLoader, parse func(url, rawHTML string) (*mdclip.Page, error)) *Server {
	return &Server{
		Handler:   handler,
		Loader:    loader,
		ParsePage: parse,
	}
}

// Init registers the routes. Only the first call has any effect.
func (s *Server) Init() {
	s.initOnce.Do(func() {
		if s.Logger == nil {
			s.Logger = slog.New(slog.DiscardHandler)
		}
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Get("/health", s.handleHealth)
		r.Post("/convert", s.handleConvert)
		r.Get("/preview", s.handlePreview)
		s.router = r
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Init()
	s.router.ServeHTTP(w, r)
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() error {
	s.Init()

	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of a running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.writeError(w, mdclip.Errorf(mdclip.EINVALID, "invalid JSON body"))
		return
	}

	page, err := s.page(r.Context(), req.URL, req.HTML)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Title != "" {
		page.Title = req.Title
	}

	writeJSON(w, http.StatusOK, s.Handler.Handle(mdclip.Request{Action: req.Action}, page))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	page, err := s.page(r.Context(), r.URL.Query().Get("url"), "")
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := s.Handler.Handle(mdclip.Request{Action: mdclip.ActionConvertArticle}, page)
	if !resp.Success {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	body, err := RenderPreview(resp.Markdown)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// page parses rawHTML when given and loads url otherwise.
func (s *Server) page(ctx context.Context, url, rawHTML string) (*mdclip.Page, error) {
	if url == "" {
		return nil, mdclip.Errorf(mdclip.EINVALID, "url required")
	}
	if rawHTML != "" {
		return s.ParsePage(url, rawHTML)
	}
	if s.Loader == nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "html required")
	}
	return s.Loader.LoadPage(ctx, url)
}

// RenderPreview renders Markdown to sanitized HTML.
func RenderPreview(md string) ([]byte, error) {
	var buf bytes.Buffer
	engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return nil, mdclip.Errorf(mdclip.ECONVERSION, "render preview: %v", err)
	}
	return bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes()), nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := mdclip.ErrorCode(err)
	if code == mdclip.EINTERNAL {
		s.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, errorStatus(code), mdclip.Response{Success: false, Error: mdclip.ErrorMessage(err)})
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(code string) int {
	switch code {
	case mdclip.EINVALID:
		return http.StatusBadRequest
	case mdclip.ENOTFOUND:
		return http.StatusNotFound
	case mdclip.ENOCONTENT, mdclip.ECONVERSION:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
