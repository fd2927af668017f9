package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

const (
	// CounterDuration is how long a counter takes to reach its target.
	CounterDuration = 1600 * time.Millisecond
	frameInterval   = 16 * time.Millisecond
)

// Progress is the value shown elapsed into a count-up of duration: ease-out, rounded
// down, and exactly target once the duration has passed.
func Progress(target int, elapsed, duration time.Duration) int {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	eased := 1 - math.Pow(1-p, 3)
	return int(math.Floor(eased * float64(target)))
}

// Counter animates an element's text from 0 to its data-counter value.
type Counter struct {
	el       dom.Element
	target   int
	suffix   string
	clock    clock.Clock
	instant  bool
	duration time.Duration
	start    time.Time
	started  bool
	done     bool
}

// NewCounter reads the target from el. A missing, non-integer or negative target is an
// error and the element is left untouched.
func NewCounter(el dom.Element, c clock.Clock, instant bool) (*Counter, error) {
	raw, ok := el.Attr(dom.AttrCounter)
	if !ok {
		return nil, fmt.Errorf("element has no %s", dom.AttrCounter)
	}
	target, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("counter target %q: %w", raw, err)
	}
	if target < 0 {
		return nil, fmt.Errorf("counter target %d is negative", target)
	}
	return &Counter{
		el:       el,
		target:   target,
		suffix:   dom.AttrOr(el, dom.AttrSuffix, ""),
		clock:    c,
		instant:  instant,
		duration: CounterDuration,
	}, nil
}

// Target is the final value.
func (c *Counter) Target() int {
	return c.target
}

// Done reports whether the final value has been written.
func (c *Counter) Done() bool {
	return c.done
}

// Start begins the count. Later calls are ignored.
func (c *Counter) Start() {
	if c.started {
		return
	}
	c.started = true
	if c.instant {
		c.finish()
		return
	}
	c.start = c.clock.Now()
	c.render(0)
	c.clock.AfterFunc(frameInterval, c.frame)
}

func (c *Counter) frame() {
	elapsed := c.clock.Now().Sub(c.start)
	if elapsed >= c.duration {
		c.finish()
		return
	}
	c.render(Progress(c.target, elapsed, c.duration))
	c.clock.AfterFunc(frameInterval, c.frame)
}

func (c *Counter) finish() {
	c.render(c.target)
	c.done = true
}

func (c *Counter) render(v int) {
	c.el.SetText(strconv.Itoa(v) + c.suffix)
}
