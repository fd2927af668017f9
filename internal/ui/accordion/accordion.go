// Package accordion expands one FAQ answer at a time.
package accordion

import (
	"strconv"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
)

// Duration is the expand/collapse length.
const Duration = 350 * time.Millisecond

type item struct {
	root    dom.Element
	trigger dom.Element
	panel   dom.Element
}

// Accordion owns which panel, if any, is open.
type Accordion struct {
	items    []item
	strategy motion.Strategy
	open     int
}

// New binds to the FAQ items. Items missing a trigger or panel are skipped; nil is
// returned when none remain. When the markup opens several panels only the first is kept.
func New(doc dom.Document, strategy motion.Strategy) *Accordion {
	root := doc.ByID(dom.IDFAQ)
	if root == nil {
		return nil
	}
	a := &Accordion{strategy: strategy, open: -1}
	for _, el := range root.QueryAll("[" + dom.AttrAccordionItem + "]") {
		trigger := el.Query("[" + dom.AttrAccordionTrigger + "]")
		panel := el.Query("[" + dom.AttrAccordionPanel + "]")
		if trigger == nil || panel == nil {
			continue
		}
		a.items = append(a.items, item{root: el, trigger: trigger, panel: panel})
	}
	if len(a.items) == 0 {
		return nil
	}
	for i, it := range a.items {
		if a.open < 0 && dom.AttrOr(it.trigger, dom.AriaExpanded, "false") == "true" {
			a.open = i
		}
	}
	for i := range a.items {
		a.apply(i, i == a.open)
	}
	return a
}

// Len is the number of items.
func (a *Accordion) Len() int { return len(a.items) }

// OpenIndex is the open item, or -1.
func (a *Accordion) OpenIndex() int { return a.open }

// Triggers lists each item's trigger, index-aligned with Toggle.
func (a *Accordion) Triggers() []dom.Element {
	out := make([]dom.Element, len(a.items))
	for i, it := range a.items {
		out[i] = it.trigger
	}
	return out
}

// Toggle opens item i, closing any other, or closes it when already open.
func (a *Accordion) Toggle(i int) {
	if i < 0 || i >= len(a.items) {
		return
	}
	if a.open == i {
		a.apply(i, false)
		a.open = -1
		return
	}
	if a.open >= 0 {
		a.apply(a.open, false)
	}
	a.apply(i, true)
	a.open = i
}

// HandleKey treats Enter and Space on a trigger as a click and reports whether the key
// was consumed.
func (a *Accordion) HandleKey(i int, key string) bool {
	switch key {
	case "Enter", " ", "Spacebar":
		a.Toggle(i)
		return true
	default:
		return false
	}
}

func (a *Accordion) apply(i int, open bool) {
	it := a.items[i]
	height := 0
	if open {
		height = it.panel.ScrollHeight()
	}
	a.strategy.Height(it.panel, height, Duration)
	it.panel.ToggleClass(dom.ClassOpen, open)
	it.root.ToggleClass(dom.ClassOpen, open)
	it.trigger.SetAttr(dom.AriaExpanded, strconv.FormatBool(open))
	it.panel.SetAttr(dom.AriaHidden, strconv.FormatBool(!open))
}
