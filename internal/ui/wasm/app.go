//go:build js && wasm

// Package wasm boots the landing page controllers in the browser and binds them to DOM
// events through syscall/js.
package wasm

import (
	"strings"
	"syscall/js"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/accordion"
	"github.com/Its-donkey/solar-site/internal/ui/carousel"
	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/forms"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
	"github.com/Its-donkey/solar-site/internal/ui/nav"
	"github.com/Its-donkey/solar-site/internal/ui/reveal"
	"github.com/Its-donkey/solar-site/logging"
)

const logCategory = "ui"

// App holds the page's controllers and every js.Func bound for them.
type App struct {
	window   js.Value
	doc      dom.Document
	logger   *logging.Logger
	clock    clock.Clock
	caps     motion.Capabilities
	strategy motion.Strategy
	handlers []js.Func

	Menu      *nav.Menu
	Header    *nav.Header
	Sections  *nav.SectionTracker
	Reveals   []*reveal.Section
	Carousel  *carousel.Carousel
	Accordion *accordion.Accordion
	Form      *forms.Form
}

// NewApp detects capabilities and selects the motion strategy. Nothing is bound yet.
func NewApp(window js.Value) *App {
	level := logging.INFO
	if strings.Contains(stringProp(window.Get("location"), "search"), "debug") {
		level = logging.DEBUG
	}
	a := &App{
		window: window,
		doc:    jsDocument{v: window.Get("document")},
		logger: logging.New("solar-site", level, consoleWriter{console: window.Get("console")}),
		clock:  clock.Real(),
		caps:   detectCapabilities(window),
	}
	deps := motion.Deps{Clock: a.clock}
	if a.caps.GSAP && a.caps.ScrollTrigger {
		gsap := window.Get("gsap")
		gsap.Call("registerPlugin", window.Get("ScrollTrigger"))
		deps.Tweener = gsapTweener{gsap: gsap}
		deps.ScrollTriggers = scrollTriggerWatcher{app: a, st: window.Get("ScrollTrigger")}
	}
	if a.caps.IntersectionObserver {
		deps.Intersections = intersectionWatcher{app: a, ctor: window.Get("IntersectionObserver")}
	}
	a.strategy = motion.New(motion.Select(a.caps), deps)
	a.logger.Debug(logCategory, "motion strategy selected", map[string]any{
		"mode":          a.strategy.Mode().String(),
		"gsap":          a.caps.GSAP,
		"scrollTrigger": a.caps.ScrollTrigger,
		"observer":      a.caps.IntersectionObserver,
		"reduced":       a.caps.ReducedMotion,
	})
	return a
}

// scrollWatcher picks the scroll signal for active link highlighting.
func (a *App) scrollWatcher() motion.Watcher {
	switch {
	case a.caps.GSAP && a.caps.ScrollTrigger:
		return scrollTriggerWatcher{app: a, st: a.window.Get("ScrollTrigger")}
	case a.caps.IntersectionObserver:
		return intersectionWatcher{app: a, ctor: a.window.Get("IntersectionObserver")}
	default:
		return nil
	}
}

func (a *App) retain(fn js.Func) js.Func {
	a.handlers = append(a.handlers, fn)
	return fn
}

func (a *App) callback(fn func()) js.Func {
	return a.retain(js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}

func (a *App) on(el dom.Element, event string, fn func(evt js.Value)) {
	target, ok := jsValue(el)
	if !ok {
		return
	}
	a.listen(target, event, nil, fn)
}

func (a *App) listen(target js.Value, event string, opts map[string]any, fn func(evt js.Value)) {
	handler := a.retain(js.FuncOf(func(this js.Value, args []js.Value) any {
		evt := js.Undefined()
		if len(args) > 0 {
			evt = args[0]
		}
		fn(evt)
		return nil
	}))
	if opts != nil {
		target.Call("addEventListener", event, handler, js.ValueOf(opts))
		return
	}
	target.Call("addEventListener", event, handler)
}

func (a *App) inert(feature string) {
	a.logger.Debug(logCategory, "feature inert", map[string]any{"feature": feature})
}

// Start binds every controller. Features whose elements are missing stay inert.
func (a *App) Start() {
	nav.SetYear(a.doc, a.clock.Now())
	a.bindMenu()
	a.bindHeader()
	a.bindSections()
	a.Reveals = reveal.Install(a.doc, a.strategy, a.clock, a.logger)
	a.bindCarousel()
	a.bindAccordion()
	a.bindForm()
}

func (a *App) bindMenu() {
	a.Menu = nav.NewMenu(a.doc)
	if a.Menu == nil {
		a.inert("menu")
		return
	}
	a.on(a.Menu.Button(), "click", func(js.Value) { a.Menu.Toggle() })
	a.on(a.Menu.Panel(), "click", func(evt js.Value) {
		a.Menu.HandleMenuClick(wrapElement(evt.Get("target")))
	})
}

func (a *App) bindHeader() {
	a.Header = nav.NewHeader(a.doc)
	if a.Header == nil {
		a.inert("header")
		return
	}
	apply := func(js.Value) { a.Header.Apply(a.window.Get("scrollY").Float()) }
	apply(js.Undefined())
	a.listen(a.window, "scroll", map[string]any{"passive": true}, apply)
}

func (a *App) bindSections() {
	a.Sections = nav.NewSectionTracker(a.doc)
	if a.Sections == nil {
		a.inert("active-section")
		return
	}
	w := a.scrollWatcher()
	if w == nil {
		a.inert("active-section")
		return
	}
	a.Sections.Follow(w)
}

func (a *App) bindCarousel() {
	a.Carousel = carousel.New(a.doc, a.strategy, a.clock)
	if a.Carousel == nil {
		a.inert("carousel")
		return
	}
	c := a.Carousel
	a.on(c.PrevButton(), "click", func(js.Value) { c.Previous() })
	a.on(c.NextButton(), "click", func(js.Value) { c.Next() })
	for _, dot := range c.Dots() {
		dot := dot
		a.on(dot, "click", func(js.Value) { c.HandleDot(dot) })
	}
	root := c.Root()
	a.on(root, "mouseenter", func(js.Value) { c.Pause() })
	a.on(root, "mouseleave", func(js.Value) { c.Resume() })
	a.on(root, "focusin", func(js.Value) { c.Pause() })
	a.on(root, "focusout", func(js.Value) { c.Resume() })
	c.Start()
}

func (a *App) bindAccordion() {
	a.Accordion = accordion.New(a.doc, a.strategy)
	if a.Accordion == nil {
		a.inert("accordion")
		return
	}
	for i, trigger := range a.Accordion.Triggers() {
		i := i
		a.on(trigger, "click", func(js.Value) { a.Accordion.Toggle(i) })
		// Buttons already turn Enter and Space into clicks.
		if trigger.TagName() == "BUTTON" {
			continue
		}
		a.on(trigger, "keydown", func(evt js.Value) {
			if a.Accordion.HandleKey(i, stringProp(evt, "key")) {
				evt.Call("preventDefault")
			}
		})
	}
}

func (a *App) bindForm() {
	a.Form = forms.New(a.doc, a.clock, a.logger)
	if a.Form == nil {
		a.inert("form")
		return
	}
	for _, field := range forms.Fields {
		field := field
		input := a.Form.Input(field)
		if input == nil {
			continue
		}
		a.on(input, "input", func(js.Value) { a.Form.HandleInput(field) })
		a.on(input, "blur", func(js.Value) { a.Form.HandleBlur(field) })
	}
	a.on(a.Form.Element(), "submit", func(evt js.Value) {
		evt.Call("preventDefault")
		a.Form.HandleSubmit()
	})
}

// Release stops autoplay and frees every bound callback.
func (a *App) Release() {
	if a.Carousel != nil {
		a.Carousel.Stop()
	}
	for _, fn := range a.handlers {
		fn.Release()
	}
	a.handlers = nil
	_ = a.logger.Sync()
}

// RunApp boots the page and blocks forever.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	app := NewApp(window)
	start := time.Now()
	app.Start()
	app.logger.Debug(logCategory, "controllers bound", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"handlers":   len(app.handlers),
	})
	<-done
}
