// Package server renders the landing page and serves the stylesheet and wasm bundle the
// page loads.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Its-donkey/solar-site/internal/content"
	"github.com/Its-donkey/solar-site/logging"
)

const logCategory = "server"

// Options configures the page server.
type Options struct {
	Listen       string
	SiteName     string
	TemplatesDir string
	AssetsDir    string
	ContentFile  string
	// Watch reloads templates and content when they change on disk.
	Watch  bool
	Logger *logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// site is an immutable snapshot of everything a page render reads.
type site struct {
	templates   map[string]*template.Template
	content     *content.Content
	contentMod  time.Time
	loadedAt    time.Time
	missing     []string
	reloadCount int
}

type server struct {
	listen       string
	siteName     string
	templatesDir string
	assetsDir    string
	contentFile  string
	stylesPath   string
	watch        bool
	logger       *logging.Logger
	now          func() time.Time
	current      atomic.Pointer[site]
}

func newServer(opts Options) (*server, error) {
	opts = applyDefaults(opts)
	templatesDir, err := filepath.Abs(opts.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("resolve templates dir: %w", err)
	}
	assetsDir, err := filepath.Abs(opts.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}
	contentFile, err := filepath.Abs(opts.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("resolve content file: %w", err)
	}
	s := &server{
		listen:       opts.Listen,
		siteName:     opts.SiteName,
		templatesDir: templatesDir,
		assetsDir:    assetsDir,
		contentFile:  contentFile,
		stylesPath:   "/styles.css",
		watch:        opts.Watch,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// snapshot returns the site currently being served.
func (s *server) snapshot() *site {
	return s.current.Load()
}

// reload parses templates and content into a new snapshot and swaps it in. On error the
// previous snapshot keeps serving.
func (s *server) reload() error {
	tmpl, err := loadTemplates(s.templatesDir)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	c, err := content.Load(s.contentFile)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	mod, err := fileModTime(s.contentFile)
	if err != nil {
		return fmt.Errorf("stat content: %w", err)
	}
	next := &site{
		templates:  tmpl,
		content:    c,
		contentMod: mod,
		loadedAt:   s.now(),
	}
	if prev := s.snapshot(); prev != nil {
		next.reloadCount = prev.reloadCount + 1
	}
	missing, err := s.checkContract(next)
	if err != nil {
		return fmt.Errorf("check page contract: %w", err)
	}
	next.missing = missing
	s.current.Store(next)
	return nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.NewHTTPLogger(s.logger).Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Method(http.MethodGet, s.stylesPath, s.assetHandler("styles.css", "text/css; charset=utf-8"))
	r.Method(http.MethodGet, "/wasm_exec.js", s.assetHandler("wasm_exec.js", "application/javascript"))
	r.Method(http.MethodGet, "/main.wasm", s.assetHandler("main.wasm", "application/wasm"))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Run serves the landing page until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}
	srv.reportContract(srv.snapshot())

	httpServer := &http.Server{
		Addr:              srv.listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv.logger.Info(logCategory, "serving landing page", map[string]any{
			"url":       "http://" + srv.listen,
			"templates": srv.templatesDir,
			"content":   srv.contentFile,
			"watch":     srv.watch,
		})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})
	if srv.watch {
		g.Go(func() error { return srv.watchFiles(gctx) })
	}
	return g.Wait()
}

func applyDefaults(opts Options) Options {
	if strings.TrimSpace(opts.Listen) == "" {
		opts.Listen = "127.0.0.1:4173"
	}
	if strings.TrimSpace(opts.SiteName) == "" {
		opts.SiteName = "Solar Site"
	}
	if opts.TemplatesDir == "" {
		opts.TemplatesDir = "ui/templates"
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "ui"
	}
	if opts.ContentFile == "" {
		opts.ContentFile = filepath.Join(opts.AssetsDir, "content.yaml")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}
