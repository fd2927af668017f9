//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

// jsDocument implements dom.Document over the live browser document.
type jsDocument struct {
	v js.Value
}

func (d jsDocument) ByID(id string) dom.Element {
	return wrapElement(d.v.Call("getElementById", id))
}

func (d jsDocument) Query(selector string) dom.Element {
	return wrapElement(d.v.Call("querySelector", selector))
}

func (d jsDocument) QueryAll(selector string) []dom.Element {
	return wrapNodeList(d.v.Call("querySelectorAll", selector))
}

type jsElement struct {
	v js.Value
}

func wrapElement(v js.Value) dom.Element {
	if !v.Truthy() {
		return nil
	}
	return &jsElement{v: v}
}

func wrapNodeList(list js.Value) []dom.Element {
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &jsElement{v: list.Index(i)})
	}
	return out
}

// jsValue unwraps an element created by this package.
func jsValue(el dom.Element) (js.Value, bool) {
	e, ok := el.(*jsElement)
	if !ok {
		return js.Value{}, false
	}
	return e.v, true
}

func stringProp(v js.Value, name string) string {
	p := v.Get(name)
	if p.Type() != js.TypeString {
		return ""
	}
	return p.String()
}

func (e *jsElement) TagName() string { return stringProp(e.v, "tagName") }
func (e *jsElement) ID() string      { return stringProp(e.v, "id") }

func (e *jsElement) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *jsElement) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *jsElement) RemoveAttr(name string)     { e.v.Call("removeAttribute", name) }

func (e *jsElement) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *jsElement) AddClass(names ...string) {
	list := e.v.Get("classList")
	for _, n := range names {
		list.Call("add", n)
	}
}

func (e *jsElement) RemoveClass(names ...string) {
	list := e.v.Get("classList")
	for _, n := range names {
		list.Call("remove", n)
	}
}

func (e *jsElement) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e *jsElement) Text() string        { return stringProp(e.v, "textContent") }
func (e *jsElement) SetText(text string) { e.v.Set("textContent", text) }
func (e *jsElement) Value() string       { return stringProp(e.v, "value") }
func (e *jsElement) SetValue(v string)   { e.v.Set("value", v) }

func (e *jsElement) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *jsElement) SetStyle(property, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", property)
		return
	}
	style.Call("setProperty", property, value)
}

func (e *jsElement) ScrollHeight() int { return e.v.Get("scrollHeight").Int() }
func (e *jsElement) Disabled() bool    { return e.v.Get("disabled").Truthy() }
func (e *jsElement) SetDisabled(d bool) {
	e.v.Set("disabled", d)
}

func (e *jsElement) Query(selector string) dom.Element {
	return wrapElement(e.v.Call("querySelector", selector))
}

func (e *jsElement) QueryAll(selector string) []dom.Element {
	return wrapNodeList(e.v.Call("querySelectorAll", selector))
}
