// Package htmldom implements dom.Document over a parsed HTML tree using goquery.
//
// The tree has no layout engine, so ScrollHeight is read from a data-scroll-height
// attribute when present.
package htmldom

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

// AttrScrollHeight stands in for layout measurement in the in-memory tree.
const AttrScrollHeight = "data-scroll-height"

// Document wraps a goquery document.
type Document struct {
	doc *goquery.Document
}

var _ dom.Document = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Selection exposes the underlying goquery selection for read-only inspection.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// HTML serialises the current tree.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// ByID implements dom.Document.
func (d *Document) ByID(id string) dom.Element {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return wrap(d.doc.Find(fmt.Sprintf(`[id=%q]`, id)))
}

// Query implements dom.Document.
func (d *Document) Query(selector string) dom.Element {
	return wrap(d.doc.Find(selector))
}

// QueryAll implements dom.Document.
func (d *Document) QueryAll(selector string) []dom.Element {
	return wrapAll(d.doc.Find(selector))
}

// Element is a single node selection.
type Element struct {
	sel *goquery.Selection
}

var _ dom.Element = (*Element)(nil)

func wrap(sel *goquery.Selection) dom.Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First()}
}

func wrapAll(sel *goquery.Selection) []dom.Element {
	out := make([]dom.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

// TagName returns the upper-case tag name, matching the browser's Element.tagName.
func (e *Element) TagName() string {
	return strings.ToUpper(goquery.NodeName(e.sel))
}

func (e *Element) ID() string {
	id, _ := e.sel.Attr("id")
	return id
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e *Element) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}

func (e *Element) HasClass(name string) bool {
	return e.sel.HasClass(name)
}

func (e *Element) AddClass(names ...string) {
	e.sel.AddClass(names...)
}

func (e *Element) RemoveClass(names ...string) {
	e.sel.RemoveClass(names...)
}

func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.sel.AddClass(name)
		return
	}
	e.sel.RemoveClass(name)
}

func (e *Element) Text() string {
	return e.sel.Text()
}

func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// Value reads the form value: textarea content, otherwise the value attribute.
func (e *Element) Value() string {
	if e.TagName() == "TEXTAREA" {
		return e.sel.Text()
	}
	v, _ := e.sel.Attr("value")
	return v
}

func (e *Element) SetValue(value string) {
	if e.TagName() == "TEXTAREA" {
		e.sel.SetText(value)
		return
	}
	e.sel.SetAttr("value", value)
}

func (e *Element) Style(property string) string {
	return parseStyle(e.sel.AttrOr("style", ""))[property]
}

func (e *Element) SetStyle(property, value string) {
	styles := parseStyle(e.sel.AttrOr("style", ""))
	if value == "" {
		delete(styles, property)
	} else {
		styles[property] = value
	}
	if len(styles) == 0 {
		e.sel.RemoveAttr("style")
		return
	}
	e.sel.SetAttr("style", formatStyle(styles))
}

func (e *Element) ScrollHeight() int {
	raw, ok := e.sel.Attr(AttrScrollHeight)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func (e *Element) Disabled() bool {
	_, ok := e.sel.Attr("disabled")
	return ok
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.sel.SetAttr("disabled", "")
		return
	}
	e.sel.RemoveAttr("disabled")
}

func (e *Element) Query(selector string) dom.Element {
	return wrap(e.sel.Find(selector))
}

func (e *Element) QueryAll(selector string) []dom.Element {
	return wrapAll(e.sel.Find(selector))
}

func parseStyle(raw string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}

func formatStyle(styles map[string]string) string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+styles[k])
	}
	return strings.Join(parts, "; ")
}
