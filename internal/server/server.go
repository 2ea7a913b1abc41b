package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/render"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// CatalogLoader builds a fresh catalog for every page request.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// Config holds server configuration.
type Config struct {
	Addr        string
	PicturesDir string
	// ThumbsDir is served under /thumbs/ when set.
	ThumbsDir string
	// CORSOrigins lets other sites embed the pages and pictures, disabled when empty.
	CORSOrigins []string
}

// Server serves the gallery pages, driven by query parameters like the static pages they mirror.
type Server struct {
	cfg        Config
	loader     CatalogLoader
	renderer   *render.Renderer
	links      render.Linker
	router     chi.Router
	httpServer *http.Server
}

func New(cfg Config, loader CatalogLoader, renderer *render.Renderer) *Server {
	s := &Server{
		cfg:      cfg,
		loader:   loader,
		renderer: renderer,
		links:    render.QueryLinker{},
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleHome)
	r.Get("/index.html", s.handleHome)
	r.Get("/comics.html", s.handleComics)
	r.Get("/tag.html", s.handleTag)
	r.Get("/search", s.handleSearch)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(render.Assets)))
	if s.cfg.PicturesDir != "" {
		r.Handle("/pictures/*", http.StripPrefix("/pictures/", http.FileServer(http.Dir(s.cfg.PicturesDir))))
	}
	if s.cfg.ThumbsDir != "" {
		r.Handle("/thumbs/*", http.StripPrefix("/thumbs/", http.FileServer(http.Dir(s.cfg.ThumbsDir))))
	}

	return r
}

// Router returns the chi router, mostly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.PicturesDir != "" && !utils.IsValidFolder(s.cfg.PicturesDir) {
		log.Warn().Str("pictures", s.cfg.PicturesDir).Msg("Pictures directory does not exist, images will be missing")
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("Gallery server listening")
		errChan <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("Shutting down gallery server")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, func(buf *bytes.Buffer, c *catalog.Catalog) (int, error) {
		return http.StatusOK, s.renderer.Home(buf, c, s.links)
	})
}

func (s *Server) handleComics(w http.ResponseWriter, r *http.Request) {
	query := render.ComicQuery{
		Playlist: r.URL.Query().Get("playlist"),
		Comic:    r.URL.Query().Get("comic"),
	}
	s.renderPage(w, r, func(buf *bytes.Buffer, c *catalog.Catalog) (int, error) {
		found, err := s.renderer.Comics(buf, c, query, s.links)
		if !found {
			return http.StatusNotFound, err
		}
		return http.StatusOK, err
	})
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	s.renderPage(w, r, func(buf *bytes.Buffer, c *catalog.Catalog) (int, error) {
		found, err := s.renderer.Tag(buf, c, tag, s.links)
		if !found {
			return http.StatusBadRequest, err
		}
		return http.StatusOK, err
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	kind := catalog.ParseSearchKind(r.URL.Query().Get("type"))
	s.renderPage(w, r, func(buf *bytes.Buffer, c *catalog.Catalog) (int, error) {
		return http.StatusOK, s.renderer.Search(buf, c, query, kind, s.links)
	})
}

// renderPage loads the catalog and renders into a buffer, so a failure never leaves a half written page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page func(buf *bytes.Buffer, c *catalog.Catalog) (int, error)) {
	logger := log.With().Str("request_id", middleware.GetReqID(r.Context())).Str("path", r.URL.Path).Logger()

	c, err := s.loader.Load(r.Context())
	if err != nil {
		var sourceErr *catalog.SourceError
		if errors.As(err, &sourceErr) {
			logger.Error().Str("source", sourceErr.Source.String()).Err(sourceErr.Err).Msg("Failed to load catalog source")
		} else {
			logger.Error().Err(err).Msg("Failed to load catalog")
		}
		s.renderError(w, r)
		return
	}

	var buf bytes.Buffer
	status, err := page(&buf, c)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render page")
		s.renderError(w, r)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.Error(&buf, s.links); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to render error page")
		http.Error(w, render.MessageLoadFailed, http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request served")
		}()
		next.ServeHTTP(ww, r)
	})
}
