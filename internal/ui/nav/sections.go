package nav

import (
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
)

// ActiveThreshold is the visible fraction at which an observed section becomes active.
const ActiveThreshold = 0.5

// SectionTracker highlights the navigation links of the section in view.
type SectionTracker struct {
	links    []dom.Element
	sections []dom.Element
	active   string
}

// NewSectionTracker collects the desktop and mobile links that name a section and the
// sections they point at. It returns nil when no linked section exists.
func NewSectionTracker(doc dom.Document) *SectionTracker {
	links := append(doc.QueryAll(dom.SelectorDesktopNavLinks), doc.QueryAll(dom.SelectorMobileNavLinks)...)
	t := &SectionTracker{links: links}
	seen := make(map[string]bool)
	for _, link := range links {
		id := dom.AttrOr(link, dom.AttrSection, "")
		if id == "" || seen[id] {
			continue
		}
		if section := doc.ByID(id); section != nil {
			seen[id] = true
			t.sections = append(t.sections, section)
		}
	}
	if len(t.sections) == 0 {
		return nil
	}
	return t
}

// Sections lists the tracked section ids in link order.
func (t *SectionTracker) Sections() []string {
	ids := make([]string, len(t.sections))
	for i, s := range t.sections {
		ids[i] = s.ID()
	}
	return ids
}

// Active is the highlighted section id, empty before the first scroll signal.
func (t *SectionTracker) Active() string {
	return t.active
}

// SetActive marks every link for id and clears the rest.
func (t *SectionTracker) SetActive(id string) {
	t.active = id
	for _, link := range t.links {
		on := dom.AttrOr(link, dom.AttrSection, "") == id
		link.ToggleClass(dom.ClassActiveLink, on)
		link.ToggleClass(dom.ClassActiveBold, on)
	}
}

// Follow subscribes every section to w. Scroll-trigger watchers use the centre line;
// intersection watchers use ActiveThreshold.
func (t *SectionTracker) Follow(w motion.Watcher) {
	if w == nil {
		return
	}
	for _, section := range t.sections {
		id := section.ID()
		activate := func() { t.SetActive(id) }
		w.Watch(section, motion.Watch{
			Threshold:   ActiveThreshold,
			Start:       "top center",
			End:         "bottom center",
			OnEnter:     activate,
			OnEnterBack: activate,
		})
	}
}
