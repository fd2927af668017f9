package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Its-donkey/solar-site/logging"
)

func (s *server) assetHandler(name, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.assetsDir, name)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, path)
	})
}

// render writes the landing page for snap into w.
func (s *server) render(w io.Writer, r *http.Request, snap *site) error {
	return snap.templates["home"].ExecuteTemplate(w, "home", s.buildHomePageData(r, snap))
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.render(&buf, r, s.snapshot()); err != nil {
		s.logger.WithRequestID(w.Header().Get(logging.RequestIDHeader)).
			WithCategory(logCategory).
			WithField("path", r.URL.Path).
			Error("render home", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type healthResponse struct {
	Status          string   `json:"status"`
	LoadedAt        string   `json:"loadedAt"`
	ContentModified string   `json:"contentModified"`
	Reloads         int      `json:"reloads"`
	Missing         []string `json:"missing,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	resp := healthResponse{
		Status:          "ok",
		LoadedAt:        snap.loadedAt.UTC().Format(time.RFC3339),
		ContentModified: snap.contentMod.UTC().Format(time.RFC3339),
		Reloads:         snap.reloadCount,
		Missing:         snap.missing,
	}
	if len(snap.missing) > 0 {
		resp.Status = "degraded"
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error(logCategory, "encode health", err, nil)
	}
}
