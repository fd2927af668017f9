// Package carousel cycles the testimonial slides.
package carousel

import (
	"strconv"
	"strings"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
)

const (
	// DefaultInterval is the autoplay period when the carousel sets none.
	DefaultInterval = 6000 * time.Millisecond
	// FadeDuration is the cross-fade length between slides.
	FadeDuration = 500 * time.Millisecond
)

// Carousel owns the active slide index and the autoplay timer.
type Carousel struct {
	root     dom.Element
	slides   []dom.Element
	dots     []dom.Element
	prev     dom.Element
	next     dom.Element
	strategy motion.Strategy
	clock    clock.Clock
	interval time.Duration

	active      int
	autoplay    clock.Timer
	enabled     bool
	transitions int
}

// New binds to the carousel root. It returns nil when the root or its slides are missing.
func New(doc dom.Document, strategy motion.Strategy, c clock.Clock) *Carousel {
	root := doc.ByID(dom.IDCarousel)
	if root == nil {
		return nil
	}
	slides := root.QueryAll("[" + dom.AttrSlide + "]")
	if len(slides) == 0 {
		return nil
	}
	car := &Carousel{
		root:     root,
		slides:   slides,
		dots:     root.QueryAll("[" + dom.AttrSlideDot + "]"),
		prev:     root.Query("[" + dom.AttrCarouselPrev + "]"),
		next:     root.Query("[" + dom.AttrCarouselNext + "]"),
		strategy: strategy,
		clock:    c,
		interval: parseInterval(dom.AttrOr(root, dom.AttrInterval, "")),
	}
	car.sync()
	return car
}

func parseInterval(raw string) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || ms <= 0 {
		return DefaultInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// Root is the element hover and focus listeners attach to.
func (c *Carousel) Root() dom.Element { return c.root }

// PrevButton may be nil.
func (c *Carousel) PrevButton() dom.Element { return c.prev }

// NextButton may be nil.
func (c *Carousel) NextButton() dom.Element { return c.next }

// Dots are the slide indicators in document order.
func (c *Carousel) Dots() []dom.Element { return c.dots }

// Len is the slide count.
func (c *Carousel) Len() int { return len(c.slides) }

// Active is the visible slide index, always in [0, Len).
func (c *Carousel) Active() int { return c.active }

// Interval is the autoplay period.
func (c *Carousel) Interval() time.Duration { return c.interval }

// Transitions counts cross-fades played so far.
func (c *Carousel) Transitions() int { return c.transitions }

// Playing reports whether the autoplay timer is running.
func (c *Carousel) Playing() bool { return c.autoplay != nil }

func (c *Carousel) normalize(i int) int {
	n := len(c.slides)
	return ((i % n) + n) % n
}

// GoTo shows slide i modulo Len and reports whether a transition played.
func (c *Carousel) GoTo(i int) bool {
	target := c.normalize(i)
	if target == c.active {
		return false
	}
	c.strategy.Crossfade(c.slides[c.active], c.slides[target], FadeDuration)
	c.active = target
	c.transitions++
	c.sync()
	return true
}

// Next advances one slide.
func (c *Carousel) Next() bool { return c.GoTo(c.active + 1) }

// Previous goes back one slide.
func (c *Carousel) Previous() bool { return c.GoTo(c.active - 1) }

// HandleDot jumps to the slide a dot names.
func (c *Carousel) HandleDot(dot dom.Element) bool {
	raw, ok := dot.Attr(dom.AttrSlideDot)
	if !ok {
		return false
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return c.GoTo(i)
}

func (c *Carousel) sync() {
	for i, slide := range c.slides {
		on := i == c.active
		slide.ToggleClass(dom.ClassActive, on)
		slide.SetAttr(dom.AriaHidden, strconv.FormatBool(!on))
	}
	for i, dot := range c.dots {
		on := i == c.active
		dot.ToggleClass(dom.ClassActive, on)
		if on {
			dot.SetAttr(dom.AriaCurrent, "true")
		} else {
			dot.RemoveAttr(dom.AriaCurrent)
		}
	}
}

// Start enables autoplay. Reduced motion or a single slide leaves it off.
func (c *Carousel) Start() {
	if c.strategy.Reduced() || len(c.slides) < 2 {
		return
	}
	c.enabled = true
	c.Resume()
}

// Pause suspends autoplay while the visitor is engaged with the carousel.
func (c *Carousel) Pause() {
	if c.autoplay != nil {
		c.autoplay.Stop()
		c.autoplay = nil
	}
}

// Resume restarts autoplay after Pause. Manual navigation does not reset it.
func (c *Carousel) Resume() {
	if !c.enabled || c.autoplay != nil {
		return
	}
	c.autoplay = clock.Every(c.clock, c.interval, func() { c.Next() })
}

// Stop disables autoplay for good.
func (c *Carousel) Stop() {
	c.enabled = false
	c.Pause()
}
