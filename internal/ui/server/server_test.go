package server

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/dom/htmldom"
	"github.com/Its-donkey/solar-site/logging"
)

var (
	shippedTemplates = filepath.Join("..", "..", "..", "ui", "templates")
	shippedContent   = filepath.Join("..", "..", "..", "ui", "content.yaml")
	fixedNow         = time.Date(2031, time.March, 4, 10, 0, 0, 0, time.UTC)
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

// sandbox copies the shipped templates and content into a temp tree the test may edit.
func sandbox(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	require.NoError(t, os.Mkdir(templates, 0o755))
	copyFile(t, filepath.Join(shippedTemplates, "base.tmpl"), filepath.Join(templates, "base.tmpl"))
	copyFile(t, filepath.Join(shippedTemplates, "home.tmpl"), filepath.Join(templates, "home.tmpl"))
	copyFile(t, shippedContent, filepath.Join(root, "content.yaml"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "styles.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.wasm"), []byte("\x00asm"), 0o644))
	return Options{
		SiteName:     "Solar Site",
		TemplatesDir: templates,
		AssetsDir:    root,
		ContentFile:  filepath.Join(root, "content.yaml"),
		Now:          func() time.Time { return fixedNow },
	}
}

func newTestServer(t *testing.T, opts Options) *server {
	t.Helper()
	srv, err := newServer(opts)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHomeSatisfiesElementContract(t *testing.T) {
	srv := newTestServer(t, Options{
		TemplatesDir: shippedTemplates,
		ContentFile:  shippedContent,
		Now:          func() time.Time { return fixedNow },
	})
	rr := get(t, srv.routes(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc, err := htmldom.Parse(rr.Body)
	require.NoError(t, err)
	assert.Empty(t, dom.Missing(doc))
	assert.Empty(t, srv.snapshot().missing)

	assert.Equal(t, "2031", doc.ByID(dom.IDYear).Text())
	counters := doc.QueryAll("[" + dom.AttrCounter + "]")
	require.Len(t, counters, 3)
	assert.Equal(t, "250", dom.AttrOr(counters[0], dom.AttrCounter, ""))
	assert.Equal(t, "%", dom.AttrOr(counters[1], dom.AttrSuffix, ""))
	assert.Len(t, doc.QueryAll("#"+dom.IDCarousel+" ["+dom.AttrSlide+"]"), 3)
	assert.Equal(t, "6000", dom.AttrOr(doc.ByID(dom.IDCarousel), dom.AttrInterval, ""))
}

func TestHomeRendersMarkdownAndNav(t *testing.T) {
	srv := newTestServer(t, sandbox(t))
	rr := get(t, srv.routes(), "/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, "certified local crews", doc.Find("#hero .lead strong").Text())
	assert.Equal(t, 6, doc.Find(`header nav[aria-label="Primary"] a[data-section]`).Length())
	assert.Equal(t, 6, doc.Find(`#mobile-menu a[data-section]`).Length())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "http://example.com/", canonical)
	assert.Equal(t, 1, doc.Find("[data-slide].is-active").Length())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, sandbox(t))
	rr := get(t, srv.routes(), "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, fixedNow.Format(time.RFC3339), body.LoadedAt)
	assert.Zero(t, body.Reloads)
	assert.Empty(t, body.Missing)
}

func TestAssetsAndFavicon(t *testing.T) {
	h := newTestServer(t, sandbox(t)).routes()

	rr := get(t, h, "/main.wasm")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/wasm", rr.Header().Get("Content-Type"))

	rr = get(t, h, "/styles.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/css; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "body{}", rr.Body.String())

	assert.Equal(t, http.StatusNoContent, get(t, h, "/favicon.ico").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/wasm_exec.js").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/streamers").Code)
}

func TestRobotsAndSitemap(t *testing.T) {
	h := newTestServer(t, sandbox(t)).routes()

	rr := get(t, h, "/robots.txt")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sitemap: http://example.com/sitemap.xml")

	rr = get(t, h, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<loc>http://example.com/</loc>")
	assert.Contains(t, rr.Body.String(), "<lastmod>")
}

func TestRequestsCarryRequestID(t *testing.T) {
	entries := make(chan logging.Entry, 4)
	logger := logging.New("test", logging.DEBUG, &strings.Builder{})
	logger.Subscribe(entries)

	opts := sandbox(t)
	opts.Logger = logger
	h := newTestServer(t, opts).routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(logging.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "req-42", rr.Header().Get(logging.RequestIDHeader))

	var got logging.Entry
	for got.Category != "http" {
		select {
		case got = <-entries:
		case <-time.After(time.Second):
			t.Fatal("no http log entry")
		}
	}
	assert.Equal(t, "req-42", got.RequestID)
}

func TestReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	opts := sandbox(t)
	srv := newTestServer(t, opts)
	before := srv.snapshot()

	require.NoError(t, os.WriteFile(opts.ContentFile, []byte("title: [broken\n"), 0o644))
	err := srv.reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load content")
	assert.Same(t, before, srv.snapshot())
	assert.Equal(t, http.StatusOK, get(t, srv.routes(), "/").Code)
}

func TestMissingElementsDegradeHealth(t *testing.T) {
	opts := sandbox(t)
	home := filepath.Join(opts.TemplatesDir, "home.tmpl")
	data, err := os.ReadFile(home)
	require.NoError(t, err)
	trimmed := strings.Replace(string(data),
		`<p id="form-status" class="form-status hidden" role="status" aria-live="polite"></p>`, "", 1)
	require.NoError(t, os.WriteFile(home, []byte(trimmed), 0o644))

	srv := newTestServer(t, opts)
	assert.Equal(t, []string{"#" + dom.IDFormStatus}, srv.snapshot().missing)

	var body healthResponse
	require.NoError(t, json.Unmarshal(get(t, srv.routes(), "/healthz").Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, []string{"#" + dom.IDFormStatus}, body.Missing)
}

func TestNewServerRejectsBadTemplates(t *testing.T) {
	opts := sandbox(t)
	require.NoError(t, os.WriteFile(filepath.Join(opts.TemplatesDir, "home.tmpl"), []byte(`{{define "home"}}{{.Nope`), 0o644))
	_, err := newServer(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load templates")
}

// waitForEntry drains entries until one carries message, failing after a second.
func waitForEntry(t *testing.T, entries <-chan logging.Entry, message string) logging.Entry {
	t.Helper()
	for {
		select {
		case got := <-entries:
			if got.Message == message {
				return got
			}
		case <-time.After(time.Second):
			t.Fatalf("no %q log entry", message)
		}
	}
}

func TestWatchReloadsChangedContent(t *testing.T) {
	opts := sandbox(t)
	entries := make(chan logging.Entry, 16)
	opts.Logger = logging.New("test", logging.INFO, &strings.Builder{})
	opts.Logger.Subscribe(entries)
	srv := newTestServer(t, opts)
	original, err := os.ReadFile(opts.ContentFile)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.watchFiles(ctx) }()
	waitForEntry(t, entries, "watching for changes")

	updated := strings.Replace(string(original), "title: Solar Site", "title: Brighter Roofs", 1)
	require.NoError(t, os.WriteFile(opts.ContentFile, []byte(updated), 0o644))
	require.Eventually(t, func() bool {
		return strings.HasPrefix(srv.snapshot().content.Title, "Brighter Roofs")
	}, 5*time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, srv.snapshot().reloadCount, 1)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRenderFailureIsLoggedWithRequestID(t *testing.T) {
	opts := sandbox(t)
	entries := make(chan logging.Entry, 16)
	opts.Logger = logging.New("test", logging.INFO, &strings.Builder{})
	opts.Logger.Subscribe(entries)
	srv := newTestServer(t, opts)

	broken := template.Must(template.New("home").Parse(`{{.Nope}}`))
	snap := *srv.snapshot()
	snap.templates = map[string]*template.Template{"home": broken}
	srv.current.Store(&snap)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logging.RequestIDHeader, "req-7")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	got := waitForEntry(t, entries, "render home")
	assert.Equal(t, "req-7", got.RequestID)
	assert.Equal(t, logCategory, got.Category)
	assert.Equal(t, "/", got.Fields["path"])
	assert.NotEmpty(t, got.Error)
}

func TestRelevantEvents(t *testing.T) {
	srv := &server{templatesDir: "/site/templates", contentFile: "/site/content.yaml"}
	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "content write", event: fsnotify.Event{Name: "/site/content.yaml", Op: fsnotify.Write}, want: true},
		{name: "content renamed over", event: fsnotify.Event{Name: "/site/content.yaml", Op: fsnotify.Rename}, want: true},
		{name: "template create", event: fsnotify.Event{Name: "/site/templates/home.tmpl", Op: fsnotify.Create}, want: true},
		{name: "editor swap file", event: fsnotify.Event{Name: "/site/templates/.home.tmpl.swp", Op: fsnotify.Write}, want: false},
		{name: "other yaml", event: fsnotify.Event{Name: "/site/other.yaml", Op: fsnotify.Write}, want: false},
		{name: "chmod", event: fsnotify.Event{Name: "/site/content.yaml", Op: fsnotify.Chmod}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, srv.relevant(tc.event))
		})
	}
}
