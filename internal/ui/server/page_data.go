package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Its-donkey/solar-site/internal/content"
)

type basePageData struct {
	PageTitle       string
	StylesheetPath  string
	CurrentYear     int
	SiteName        string
	MetaDescription string
	CanonicalURL    string
	Nav             []content.NavLink
}

type homePageData struct {
	basePageData
	Content *content.Content
}

// absoluteURL builds an absolute URL for path using the request as a hint. A nil
// request yields a localhost URL.
func (s *server) absoluteURL(r *http.Request, path string) string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		clean = "/"
	}
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}

	scheme := "https"
	if r != nil {
		if proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto != "" {
			scheme = proto
		} else if r.TLS == nil {
			scheme = "http"
		}
		if host := strings.TrimSpace(r.Host); host != "" {
			return fmt.Sprintf("%s://%s%s", scheme, host, clean)
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, "localhost", clean)
}

// truncateWithEllipsis trims a string to a maximum number of runes,
// attempting to cut on a word boundary, and appends an ellipsis if trimmed.
func truncateWithEllipsis(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 0 {
		return value
	}

	runes := []rune(value)
	if len(runes) <= max {
		return value
	}

	cut := max
	for i := max - 1; i >= 0 && i >= max-20; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}

	trimmed := strings.TrimSpace(string(runes[:cut]))
	if trimmed == "" {
		trimmed = strings.TrimSpace(string(runes[:max]))
	}
	return trimmed + "…"
}

// buildHomePageData assembles template data from a site snapshot.
func (s *server) buildHomePageData(r *http.Request, snap *site) homePageData {
	c := snap.content
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = s.siteName
	}
	return homePageData{
		basePageData: basePageData{
			PageTitle:       title,
			StylesheetPath:  s.stylesPath,
			CurrentYear:     s.now().Year(),
			SiteName:        s.siteName,
			MetaDescription: truncateWithEllipsis(c.Description, 155),
			CanonicalURL:    s.absoluteURL(r, "/"),
			Nav:             c.Nav,
		},
		Content: c,
	}
}
