package motion

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

const defaultEase = "power2.out"

// once guards a callback so a watcher that fires repeatedly still runs it one time.
func once(fn func()) func() {
	var o sync.Once
	return func() { o.Do(fn) }
}

type richStrategy struct {
	triggers Watcher
	tweener  Tweener
}

func (s *richStrategy) Mode() Mode    { return Rich }
func (s *richStrategy) Reduced() bool { return false }

func (s *richStrategy) OnVisible(target dom.Element, threshold float64, fn func()) {
	if target == nil {
		return
	}
	s.triggers.Watch(target, Watch{
		Threshold: threshold,
		Start:     fmt.Sprintf("top %d%%", 100-int(math.Round(threshold*100))),
		Once:      true,
		OnEnter:   once(fn),
	})
}

func (s *richStrategy) Reveal(els []dom.Element, step Step) {
	if len(els) == 0 {
		return
	}
	for _, el := range els {
		el.AddClass(dom.ClassRevealed)
	}
	s.tweener.FromTo(Tween{
		Targets:  els,
		From:     Props{"y": step.Y, "opacity": 0},
		To:       Props{"y": 0, "opacity": 1},
		Duration: step.Duration,
		Delay:    step.Delay,
		Stagger:  step.Stagger,
		Ease:     defaultEase,
	})
}

func (s *richStrategy) Crossfade(out, in dom.Element, d time.Duration) {
	if out != nil {
		out.RemoveClass(dom.ClassActive)
		s.tweener.To(Tween{Targets: []dom.Element{out}, To: Props{"opacity": 0}, Duration: d, Ease: defaultEase})
	}
	if in != nil {
		in.AddClass(dom.ClassActive)
		s.tweener.FromTo(Tween{
			Targets:  []dom.Element{in},
			From:     Props{"opacity": 0},
			To:       Props{"opacity": 1},
			Duration: d,
			Ease:     defaultEase,
		})
	}
}

func (s *richStrategy) Height(el dom.Element, px int, d time.Duration) {
	if el == nil {
		return
	}
	s.tweener.To(Tween{Targets: []dom.Element{el}, To: Props{"height": px}, Duration: d, Ease: defaultEase})
}

// classStrategy relies on stylesheet transitions keyed off state classes.
type classStrategy struct {
	mode    Mode
	watcher Watcher
	clock   clock.Clock
	delay   time.Duration
}

func (s *classStrategy) Mode() Mode    { return s.mode }
func (s *classStrategy) Reduced() bool { return false }

func (s *classStrategy) OnVisible(target dom.Element, threshold float64, fn func()) {
	if target == nil {
		return
	}
	if s.watcher != nil {
		s.watcher.Watch(target, Watch{Threshold: threshold, Once: true, OnEnter: once(fn)})
		return
	}
	s.clock.AfterFunc(s.delay, once(fn))
}

func (s *classStrategy) Reveal(els []dom.Element, step Step) {
	for i, el := range els {
		delay := step.Delay + time.Duration(i)*step.Stagger
		if delay > 0 {
			el.SetStyle("transition-delay", fmt.Sprintf("%dms", delay.Milliseconds()))
		}
		el.AddClass(dom.ClassRevealed)
	}
}

func (s *classStrategy) Crossfade(out, in dom.Element, _ time.Duration) {
	if out != nil {
		out.RemoveClass(dom.ClassActive)
	}
	if in != nil {
		in.AddClass(dom.ClassActive)
	}
}

func (s *classStrategy) Height(el dom.Element, px int, _ time.Duration) {
	if el == nil {
		return
	}
	el.SetStyle("height", fmt.Sprintf("%dpx", px))
}

// instantStrategy jumps to end states with transitions disabled.
type instantStrategy struct{}

func (instantStrategy) Mode() Mode    { return Instant }
func (instantStrategy) Reduced() bool { return true }

func (instantStrategy) OnVisible(target dom.Element, _ float64, fn func()) {
	if target == nil {
		return
	}
	fn()
}

func (instantStrategy) Reveal(els []dom.Element, _ Step) {
	for _, el := range els {
		el.SetStyle("transition", "none")
		el.SetStyle("opacity", "1")
		el.SetStyle("transform", "none")
		el.AddClass(dom.ClassRevealed)
	}
}

func (instantStrategy) Crossfade(out, in dom.Element, _ time.Duration) {
	if out != nil {
		out.SetStyle("transition", "none")
		out.RemoveClass(dom.ClassActive)
	}
	if in != nil {
		in.SetStyle("transition", "none")
		in.AddClass(dom.ClassActive)
	}
}

func (instantStrategy) Height(el dom.Element, px int, _ time.Duration) {
	if el == nil {
		return
	}
	el.SetStyle("transition", "none")
	el.SetStyle("height", fmt.Sprintf("%dpx", px))
}
