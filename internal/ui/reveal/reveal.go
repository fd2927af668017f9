// Package reveal plays the one-shot entrance of each landing page section and runs the
// impact counters once their section is on screen.
package reveal

import (
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
	"github.com/Its-donkey/solar-site/logging"
)

// Group is a set of elements inside a section that animate together.
type Group struct {
	Selector string
	Step     motion.Step
}

// Spec describes one section's entrance.
type Spec struct {
	Name      string
	RootID    string
	Threshold float64
	Groups    []Group
}

func heading(delay time.Duration) Group {
	return Group{
		Selector: `[data-reveal="heading"]`,
		Step:     motion.Step{Y: 24, Duration: 600 * time.Millisecond, Delay: delay},
	}
}

func cards(kind string, stagger time.Duration) Group {
	return Group{
		Selector: `[data-reveal="` + kind + `"]`,
		Step:     motion.Step{Y: 32, Duration: 700 * time.Millisecond, Delay: 150 * time.Millisecond, Stagger: stagger},
	}
}

// Specs is every section the page reveals.
var Specs = []Spec{
	{
		Name: "hero", RootID: dom.IDHero, Threshold: 0.3,
		Groups: []Group{{
			Selector: `[data-reveal="hero"]`,
			Step:     motion.Step{Y: 40, Duration: 900 * time.Millisecond, Stagger: 120 * time.Millisecond},
		}},
	},
	{Name: "services", RootID: dom.IDServices, Threshold: 0.35, Groups: []Group{heading(0), cards("card", 120*time.Millisecond)}},
	{Name: "process", RootID: dom.IDProcess, Threshold: 0.35, Groups: []Group{heading(0), cards("step", 150*time.Millisecond)}},
	{Name: "impact", RootID: dom.IDImpact, Threshold: 0.5, Groups: []Group{heading(0), cards("stat", 100*time.Millisecond)}},
	{Name: "testimonials", RootID: dom.IDTestimonial, Threshold: 0.4, Groups: []Group{heading(0)}},
	{Name: "faq", RootID: dom.IDFAQ, Threshold: 0.4, Groups: []Group{heading(0)}},
	{
		Name: "cta", RootID: dom.IDCTA, Threshold: 0.4,
		Groups: []Group{heading(0), cards("copy", 0), cards("form", 0)},
	},
}

// Section is the {unrevealed → revealed} state machine for one section.
type Section struct {
	spec     Spec
	root     dom.Element
	strategy motion.Strategy
	revealed bool
	after    []func()
}

// NewSection binds spec to the page. It returns nil when the section root is missing.
func NewSection(doc dom.Document, spec Spec, strategy motion.Strategy) *Section {
	root := doc.ByID(spec.RootID)
	if root == nil {
		return nil
	}
	return &Section{spec: spec, root: root, strategy: strategy}
}

// Name identifies the section.
func (s *Section) Name() string {
	return s.spec.Name
}

// Revealed reports whether the entrance has played.
func (s *Section) Revealed() bool {
	return s.revealed
}

// OnReveal queues fn to run right after the entrance plays.
func (s *Section) OnReveal(fn func()) {
	s.after = append(s.after, fn)
}

// Arm hands the section to the strategy's visibility trigger.
func (s *Section) Arm() {
	s.strategy.OnVisible(s.root, s.spec.Threshold, s.Reveal)
}

// Reveal plays the entrance. Only the first call has any effect.
func (s *Section) Reveal() {
	if s.revealed {
		return
	}
	s.revealed = true
	s.root.AddClass(dom.ClassRevealed)
	for _, g := range s.spec.Groups {
		s.strategy.Reveal(s.root.QueryAll(g.Selector), g.Step)
	}
	for _, fn := range s.after {
		fn()
	}
}

// Counters returns a counter for each valid [data-counter] in the section. Invalid
// targets are logged and skipped.
func (s *Section) Counters(c clock.Clock, logger *logging.Logger) []*Counter {
	var out []*Counter
	for _, el := range s.root.QueryAll("[" + dom.AttrCounter + "]") {
		counter, err := NewCounter(el, c, s.strategy.Reduced())
		if err != nil {
			logger.Warn("ui", "counter skipped", map[string]any{"section": s.spec.Name, "error": err.Error()})
			continue
		}
		out = append(out, counter)
	}
	return out
}

// Install binds and arms every section in Specs, wiring the impact counters to the
// impact reveal. Sections missing from the page are skipped.
func Install(doc dom.Document, strategy motion.Strategy, c clock.Clock, logger *logging.Logger) []*Section {
	var out []*Section
	for _, spec := range Specs {
		section := NewSection(doc, spec, strategy)
		if section == nil {
			logger.Debug("ui", "reveal inert", map[string]any{"section": spec.Name})
			continue
		}
		if spec.RootID == dom.IDImpact {
			counters := section.Counters(c, logger)
			section.OnReveal(func() {
				for _, counter := range counters {
					counter.Start()
				}
			})
		}
		out = append(out, section)
	}
	for _, section := range out {
		section.Arm()
	}
	return out
}
