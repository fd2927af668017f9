// Package motion selects how the page animates, once, from the capabilities the browser
// reports: a GSAP-driven rich mode, CSS class toggles triggered by IntersectionObserver or
// by a fixed timer, or instant end states when the visitor prefers reduced motion.
package motion

import (
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

// Mode names a strategy variant.
type Mode int

const (
	Rich Mode = iota
	Intersection
	Timer
	Instant
)

func (m Mode) String() string {
	switch m {
	case Rich:
		return "rich"
	case Intersection:
		return "intersection"
	case Timer:
		return "timer"
	case Instant:
		return "instant"
	default:
		return "unknown"
	}
}

// Capabilities is what the browser offers, detected once at startup.
type Capabilities struct {
	GSAP                 bool
	ScrollTrigger        bool
	IntersectionObserver bool
	ReducedMotion        bool
}

// Select picks the strategy mode for the given capabilities.
func Select(c Capabilities) Mode {
	switch {
	case c.ReducedMotion:
		return Instant
	case c.GSAP && c.ScrollTrigger:
		return Rich
	case c.IntersectionObserver:
		return Intersection
	default:
		return Timer
	}
}

// TimerFallbackDelay is how long the timer strategy waits before revealing a section.
const TimerFallbackDelay = 300 * time.Millisecond

// Props are tween variables keyed by GSAP property name.
type Props map[string]any

// Tween is a single GSAP-style animation over one or more targets.
type Tween struct {
	Targets  []dom.Element
	From     Props
	To       Props
	Duration time.Duration
	Delay    time.Duration
	Stagger  time.Duration
	Ease     string
}

// Tweener is the external animation library.
type Tweener interface {
	FromTo(t Tween)
	To(t Tween)
}

// Watch describes a visibility subscription.
type Watch struct {
	// Threshold is the visible fraction that counts as entering.
	Threshold float64
	// Start and End are scroll-trigger positions such as "top center". Watchers that
	// only understand thresholds ignore them.
	Start string
	End   string
	// Once unsubscribes after the first enter.
	Once        bool
	OnEnter     func()
	OnEnterBack func()
}

// Watcher reports when targets scroll into view.
type Watcher interface {
	Watch(target dom.Element, w Watch)
}

// Step is the presentational timing of one reveal group.
type Step struct {
	Y        float64
	Duration time.Duration
	Delay    time.Duration
	Stagger  time.Duration
}

// Strategy is the capability-specific way to trigger and play transitions.
type Strategy interface {
	Mode() Mode
	// Reduced reports whether non-essential motion is disabled.
	Reduced() bool
	// OnVisible runs fn at most once, when target is first seen at threshold.
	OnVisible(target dom.Element, threshold float64, fn func())
	// Reveal leaves every element in its visible state.
	Reveal(els []dom.Element, step Step)
	// Crossfade hides out and shows in.
	Crossfade(out, in dom.Element, d time.Duration)
	// Height sets el to px pixels tall.
	Height(el dom.Element, px int, d time.Duration)
}

// Deps are the browser adapters a strategy may need. Nil members are fine for modes
// that do not use them.
type Deps struct {
	ScrollTriggers Watcher
	Intersections  Watcher
	Tweener        Tweener
	Clock          clock.Clock
}

// New builds the strategy for mode. A mode whose adapters are missing degrades to the
// next variant down the chain.
func New(mode Mode, deps Deps) Strategy {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	switch mode {
	case Rich:
		if deps.ScrollTriggers != nil && deps.Tweener != nil {
			return &richStrategy{triggers: deps.ScrollTriggers, tweener: deps.Tweener}
		}
		fallthrough
	case Intersection:
		if deps.Intersections != nil {
			return &classStrategy{mode: Intersection, watcher: deps.Intersections}
		}
		fallthrough
	case Timer:
		return &classStrategy{mode: Timer, clock: deps.Clock, delay: TimerFallbackDelay}
	default:
		return instantStrategy{}
	}
}
