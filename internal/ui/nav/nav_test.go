package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion/motiontest"
	"github.com/Its-donkey/solar-site/internal/ui/uitest"
)

func TestMenuToggleTwiceRestoresState(t *testing.T) {
	doc := uitest.Load(t)
	menu := NewMenu(doc)
	require.NotNil(t, menu)
	button := doc.ByID(dom.IDMenuButton)
	before, _ := button.Attr(dom.AriaExpanded)

	menu.Toggle()
	assert.True(t, menu.IsOpen())
	assert.Equal(t, "true", dom.AttrOr(button, dom.AriaExpanded, ""))
	assert.Equal(t, "Close menu", dom.AttrOr(button, dom.AriaLabel, ""))
	assert.False(t, doc.ByID(dom.IDMobileMenu).HasClass(dom.ClassHidden))
	assert.True(t, doc.ByID(dom.IDIconMenu).HasClass(dom.ClassHidden))
	assert.False(t, doc.ByID(dom.IDIconClose).HasClass(dom.ClassHidden))

	menu.Toggle()
	after, _ := button.Attr(dom.AriaExpanded)
	assert.Equal(t, before, after)
	assert.Equal(t, "Open menu", dom.AttrOr(button, dom.AriaLabel, ""))
	assert.True(t, doc.ByID(dom.IDMobileMenu).HasClass(dom.ClassHidden))
	assert.False(t, doc.ByID(dom.IDIconMenu).HasClass(dom.ClassHidden))
}

func TestMenuClosesOnLinkClickOnly(t *testing.T) {
	doc := uitest.Load(t)
	menu := NewMenu(doc)
	menu.Toggle()

	menu.HandleMenuClick(doc.Query("#mobile-menu .divider"))
	assert.True(t, menu.IsOpen(), "non-link clicks keep the panel open")

	menu.HandleMenuClick(doc.Query("#mobile-menu a"))
	assert.False(t, menu.IsOpen())
	assert.Equal(t, "false", dom.AttrOr(doc.ByID(dom.IDMenuButton), dom.AriaExpanded, ""))
	assert.True(t, doc.ByID(dom.IDIconClose).HasClass(dom.ClassHidden))
}

func TestMenuInertWithoutElements(t *testing.T) {
	doc := uitest.LoadHTML(t, `<button id="menu-button"></button>`)
	assert.Nil(t, NewMenu(doc))
}

func TestMenuWithoutIcons(t *testing.T) {
	doc := uitest.LoadHTML(t, `<button id="menu-button"></button><div id="mobile-menu" class="hidden"></div><svg id="icon-menu"></svg>`)
	menu := NewMenu(doc)
	require.NotNil(t, menu)
	menu.Toggle()
	assert.False(t, doc.ByID(dom.IDIconMenu).HasClass(dom.ClassHidden), "a lone icon is left alone")
}

func TestHeaderElevation(t *testing.T) {
	doc := uitest.Load(t)
	header := NewHeader(doc)
	require.NotNil(t, header)
	el := doc.ByID(dom.IDSiteHeader)

	for _, y := range []float64{0, 3.5, 8} {
		header.Apply(y)
		assert.False(t, el.HasClass(dom.ClassShadow), "offset %v", y)
		assert.False(t, el.HasClass(dom.ClassHeaderTint), "offset %v", y)
	}
	for _, y := range []float64{8.1, 9, 2400} {
		header.Apply(y)
		assert.True(t, el.HasClass(dom.ClassShadow), "offset %v", y)
		assert.True(t, el.HasClass(dom.ClassHeaderTint), "offset %v", y)
	}
	assert.True(t, el.HasClass("sticky"))
}

func activeLinks(t *testing.T, doc dom.Document) map[string]int {
	t.Helper()
	out := make(map[string]int)
	for _, link := range doc.QueryAll("a[data-section]") {
		if link.HasClass(dom.ClassActiveLink) {
			out[dom.AttrOr(link, dom.AttrSection, "")]++
			assert.True(t, link.HasClass(dom.ClassActiveBold))
		}
	}
	return out
}

func TestSectionTrackerCollectsDistinctSections(t *testing.T) {
	tracker := NewSectionTracker(uitest.Load(t))
	require.NotNil(t, tracker)
	assert.Equal(t, []string{"hero", "services", "process", "faq"}, tracker.Sections())
}

func TestSectionTrackerSingleActiveSection(t *testing.T) {
	doc := uitest.Load(t)
	tracker := NewSectionTracker(doc)
	watcher := &motiontest.Watcher{}
	tracker.Follow(watcher)
	require.Len(t, watcher.Subs, 4)
	assert.Equal(t, "top center", watcher.Subs[0].Watch.Start)
	assert.Equal(t, ActiveThreshold, watcher.Subs[0].Watch.Threshold)

	watcher.Enter("services")
	assert.Equal(t, "services", tracker.Active())
	assert.Equal(t, map[string]int{"services": 2}, activeLinks(t, doc))

	watcher.Enter("faq")
	assert.Equal(t, map[string]int{"faq": 1}, activeLinks(t, doc))

	watcher.EnterBack("hero")
	assert.Equal(t, map[string]int{"hero": 2}, activeLinks(t, doc))
}

func TestSectionTrackerInertWithoutSections(t *testing.T) {
	doc := uitest.LoadHTML(t, `<header><nav aria-label="Primary"><a data-section="nowhere">x</a></nav></header>`)
	assert.Nil(t, NewSectionTracker(doc))
}

func TestSetYear(t *testing.T) {
	doc := uitest.Load(t)
	SetYear(doc, time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2031", doc.ByID(dom.IDYear).Text())
}
