// Package dom describes the slice of the browser document that the landing page
// controllers read and mutate. The browser build backs it with syscall/js; tests and the
// page server back it with an in-memory goquery document.
package dom

// Element is a single DOM node.
type Element interface {
	TagName() string
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	// ToggleClass adds name when on is true and removes it otherwise.
	ToggleClass(name string, on bool)
	Text() string
	SetText(text string)
	Value() string
	SetValue(value string)
	Style(property string) string
	SetStyle(property, value string)
	// ScrollHeight reports the measured content height in pixels.
	ScrollHeight() int
	Disabled() bool
	SetDisabled(disabled bool)
	Query(selector string) Element
	QueryAll(selector string) []Element
}

// Document is the root lookup surface. Lookups that miss return nil.
type Document interface {
	ByID(id string) Element
	Query(selector string) Element
	QueryAll(selector string) []Element
}

// AttrOr returns the attribute value or fallback when it is absent.
func AttrOr(el Element, name, fallback string) string {
	if el == nil {
		return fallback
	}
	if v, ok := el.Attr(name); ok {
		return v
	}
	return fallback
}
