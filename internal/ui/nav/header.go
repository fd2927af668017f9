package nav

import (
	"strconv"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

// ElevateAfter is the scroll offset in pixels past which the header is elevated.
const ElevateAfter = 8

// Elevated reports whether the header should carry its elevated style at scrollY.
func Elevated(scrollY float64) bool {
	return scrollY > ElevateAfter
}

// Header toggles the sticky header's elevated style.
type Header struct {
	el dom.Element
}

// NewHeader returns nil when the page has no header.
func NewHeader(doc dom.Document) *Header {
	el := doc.ByID(dom.IDSiteHeader)
	if el == nil {
		return nil
	}
	return &Header{el: el}
}

// Apply sets the style for the current scroll offset.
func (h *Header) Apply(scrollY float64) {
	on := Elevated(scrollY)
	h.el.ToggleClass(dom.ClassShadow, on)
	h.el.ToggleClass(dom.ClassHeaderTint, on)
}

// SetYear writes now's year into the footer.
func SetYear(doc dom.Document, now time.Time) {
	if el := doc.ByID(dom.IDYear); el != nil {
		el.SetText(strconv.Itoa(now.Year()))
	}
}
