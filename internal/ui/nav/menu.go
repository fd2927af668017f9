// Package nav holds the header controllers: the mobile menu, scroll-linked active link
// highlighting, the elevated header style and the footer year.
package nav

import (
	"strconv"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

const (
	labelOpen  = "Open menu"
	labelClose = "Close menu"
)

// Menu owns the open/closed state of the mobile navigation panel.
type Menu struct {
	button    dom.Element
	panel     dom.Element
	iconMenu  dom.Element
	iconClose dom.Element
	open      bool
}

// NewMenu binds to the menu button and panel. It returns nil when either is missing.
func NewMenu(doc dom.Document) *Menu {
	button := doc.ByID(dom.IDMenuButton)
	panel := doc.ByID(dom.IDMobileMenu)
	if button == nil || panel == nil {
		return nil
	}
	m := &Menu{
		button: button,
		panel:  panel,
		open:   !panel.HasClass(dom.ClassHidden),
	}
	iconMenu, iconClose := doc.ByID(dom.IDIconMenu), doc.ByID(dom.IDIconClose)
	if iconMenu != nil && iconClose != nil {
		m.iconMenu, m.iconClose = iconMenu, iconClose
	}
	return m
}

// IsOpen reports the current state.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Panel is the element whose clicks feed HandleMenuClick.
func (m *Menu) Panel() dom.Element {
	return m.panel
}

// Button is the element whose clicks feed Toggle.
func (m *Menu) Button() dom.Element {
	return m.button
}

// Toggle flips the panel.
func (m *Menu) Toggle() {
	m.set(!m.open)
}

// Close hides the panel.
func (m *Menu) Close() {
	m.set(false)
}

// HandleMenuClick closes the menu when a link inside the panel was clicked.
func (m *Menu) HandleMenuClick(target dom.Element) {
	if target == nil || target.TagName() != "A" {
		return
	}
	m.Close()
}

func (m *Menu) set(open bool) {
	m.open = open
	m.panel.ToggleClass(dom.ClassHidden, !open)
	if m.iconMenu != nil {
		m.iconMenu.ToggleClass(dom.ClassHidden, open)
		m.iconClose.ToggleClass(dom.ClassHidden, !open)
	}
	m.button.SetAttr(dom.AriaExpanded, strconv.FormatBool(open))
	if open {
		m.button.SetAttr(dom.AriaLabel, labelClose)
	} else {
		m.button.SetAttr(dom.AriaLabel, labelOpen)
	}
}
