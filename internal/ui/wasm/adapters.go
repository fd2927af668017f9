//go:build js && wasm

package wasm

import (
	"strings"
	"syscall/js"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
)

const reducedMotionQuery = "(prefers-reduced-motion: reduce)"

func isFunc(v js.Value) bool {
	return v.Type() == js.TypeFunction
}

func detectCapabilities(window js.Value) motion.Capabilities {
	gsap := window.Get("gsap")
	caps := motion.Capabilities{
		GSAP:                 gsap.Truthy(),
		ScrollTrigger:        window.Get("ScrollTrigger").Truthy(),
		IntersectionObserver: isFunc(window.Get("IntersectionObserver")),
	}
	if isFunc(window.Get("matchMedia")) {
		caps.ReducedMotion = window.Call("matchMedia", reducedMotionQuery).Get("matches").Bool()
	}
	return caps
}

func targetsOf(els []dom.Element) js.Value {
	out := make([]any, 0, len(els))
	for _, el := range els {
		if v, ok := jsValue(el); ok {
			out = append(out, v)
		}
	}
	return js.ValueOf(out)
}

func propsOf(p motion.Props) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// gsapTweener drives window.gsap.
type gsapTweener struct {
	gsap js.Value
}

func (g gsapTweener) vars(t motion.Tween) js.Value {
	vars := propsOf(t.To)
	vars["duration"] = t.Duration.Seconds()
	if t.Delay > 0 {
		vars["delay"] = t.Delay.Seconds()
	}
	if t.Stagger > 0 {
		vars["stagger"] = t.Stagger.Seconds()
	}
	if t.Ease != "" {
		vars["ease"] = t.Ease
	}
	return js.ValueOf(vars)
}

func (g gsapTweener) FromTo(t motion.Tween) {
	g.gsap.Call("fromTo", targetsOf(t.Targets), js.ValueOf(propsOf(t.From)), g.vars(t))
}

func (g gsapTweener) To(t motion.Tween) {
	g.gsap.Call("to", targetsOf(t.Targets), g.vars(t))
}

// scrollTriggerWatcher creates one ScrollTrigger per Watch.
type scrollTriggerWatcher struct {
	app *App
	st  js.Value
}

func (w scrollTriggerWatcher) Watch(target dom.Element, watch motion.Watch) {
	el, ok := jsValue(target)
	if !ok {
		return
	}
	cfg := map[string]any{"trigger": el, "once": watch.Once}
	if watch.Start != "" {
		cfg["start"] = watch.Start
	}
	if watch.End != "" {
		cfg["end"] = watch.End
	}
	if watch.OnEnter != nil {
		cfg["onEnter"] = w.app.callback(watch.OnEnter)
	}
	if watch.OnEnterBack != nil {
		cfg["onEnterBack"] = w.app.callback(watch.OnEnterBack)
	}
	w.st.Call("create", js.ValueOf(cfg))
}

// intersectionWatcher creates one IntersectionObserver per Watch.
type intersectionWatcher struct {
	app  *App
	ctor js.Value
}

func (w intersectionWatcher) Watch(target dom.Element, watch motion.Watch) {
	el, ok := jsValue(target)
	if !ok || watch.OnEnter == nil {
		return
	}
	var observer js.Value
	handler := w.app.retain(js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			if watch.Once {
				observer.Call("unobserve", entry.Get("target"))
			}
			watch.OnEnter()
		}
		return nil
	}))
	observer = w.ctor.New(handler, js.ValueOf(map[string]any{
		"root":       nil,
		"rootMargin": "0px",
		"threshold":  watch.Threshold,
	}))
	observer.Call("observe", el)
}

// consoleWriter sends each log line to console.log.
type consoleWriter struct {
	console js.Value
}

func (c consoleWriter) Write(p []byte) (int, error) {
	if c.console.Truthy() {
		c.console.Call("log", strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}
