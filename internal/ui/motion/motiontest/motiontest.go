// Package motiontest provides recording fakes for the motion adapters.
package motiontest

import (
	"sync"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
)

// Subscription is one recorded Watch call.
type Subscription struct {
	Target dom.Element
	Watch  motion.Watch
}

// Watcher records subscriptions and lets tests fire them.
type Watcher struct {
	mu   sync.Mutex
	Subs []Subscription
}

func (w *Watcher) Watch(target dom.Element, watch motion.Watch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Subs = append(w.Subs, Subscription{Target: target, Watch: watch})
}

// Enter fires OnEnter for every subscription on the element with the given id.
func (w *Watcher) Enter(id string) int {
	return w.fire(id, func(s motion.Watch) func() { return s.OnEnter })
}

// EnterBack fires OnEnterBack for every subscription on the element with the given id.
func (w *Watcher) EnterBack(id string) int {
	return w.fire(id, func(s motion.Watch) func() { return s.OnEnterBack })
}

func (w *Watcher) fire(id string, pick func(motion.Watch) func()) int {
	w.mu.Lock()
	subs := append([]Subscription(nil), w.Subs...)
	w.mu.Unlock()
	fired := 0
	for _, s := range subs {
		if s.Target == nil || s.Target.ID() != id {
			continue
		}
		if fn := pick(s.Watch); fn != nil {
			fn()
			fired++
		}
	}
	return fired
}

// Tweener records tweens without animating.
type Tweener struct {
	mu     sync.Mutex
	Tweens []Call
}

// Call is one recorded tween.
type Call struct {
	Method string
	Tween  motion.Tween
}

func (t *Tweener) FromTo(tw motion.Tween) { t.record("fromTo", tw) }
func (t *Tweener) To(tw motion.Tween)     { t.record("to", tw) }

func (t *Tweener) record(method string, tw motion.Tween) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Tweens = append(t.Tweens, Call{Method: method, Tween: tw})
}

// Count reports how many tweens were recorded.
func (t *Tweener) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Tweens)
}
