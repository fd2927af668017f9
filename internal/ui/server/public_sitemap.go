package server

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s\n", s.absoluteURL(r, "/sitemap.xml"))
}

// handleSitemap lists the single landing page, last modified when its content was.
func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	entry := sitemapURL{
		Loc:        s.absoluteURL(r, "/"),
		ChangeFreq: "weekly",
		Priority:   "1.0",
	}
	if mod := s.snapshot().contentMod; !mod.IsZero() {
		entry.LastMod = mod.UTC().Format(time.RFC3339)
	}
	payload := sitemapSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{entry},
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		s.logger.Error(logCategory, "render sitemap", err, nil)
	}
}
