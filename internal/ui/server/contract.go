package server

import (
	"bytes"
	"fmt"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/dom/htmldom"
)

// checkContract renders snap and returns the element contract selectors the page misses.
func (s *server) checkContract(snap *site) ([]string, error) {
	var buf bytes.Buffer
	if err := s.render(&buf, nil, snap); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	doc, err := htmldom.Parse(&buf)
	if err != nil {
		return nil, err
	}
	return dom.Missing(doc), nil
}

// reportContract logs one warning per missing element; each leaves a page feature inert.
func (s *server) reportContract(snap *site) {
	if len(snap.missing) == 0 {
		s.logger.Debug(logCategory, "page satisfies element contract", map[string]any{
			"selectors": len(dom.Contract),
		})
		return
	}
	for _, sel := range snap.missing {
		s.logger.Warn(logCategory, "page is missing a scripted element", map[string]any{
			"selector": sel,
		})
	}
}
