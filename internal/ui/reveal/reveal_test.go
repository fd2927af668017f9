package reveal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/internal/ui/motion"
	"github.com/Its-donkey/solar-site/internal/ui/motion/motiontest"
	"github.com/Its-donkey/solar-site/internal/ui/uitest"
	"github.com/Its-donkey/solar-site/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestProgress(t *testing.T) {
	d := CounterDuration
	assert.Equal(t, 0, Progress(250, 0, d))
	assert.Equal(t, 250, Progress(250, d, d))
	assert.Equal(t, 250, Progress(250, 10*d, d))
	assert.Equal(t, 250, Progress(250, time.Millisecond, 0))

	prev := 0
	for elapsed := time.Duration(0); elapsed < d; elapsed += 16 * time.Millisecond {
		v := Progress(250, elapsed, d)
		assert.Less(t, v, 250, "must stay below target before completion")
		assert.GreaterOrEqual(t, v, prev, "must not go backwards")
		prev = v
	}
}

func TestCounterEndsExactlyOnTarget(t *testing.T) {
	doc := uitest.LoadHTML(t, `<span id="c" data-counter="250">0</span>`)
	c := clock.NewManual(epoch)
	counter, err := NewCounter(doc.ByID("c"), c, false)
	require.NoError(t, err)

	counter.Start()
	assert.Equal(t, "0", doc.ByID("c").Text())
	c.Advance(CounterDuration / 2)
	mid := doc.ByID("c").Text()
	assert.NotEqual(t, "0", mid)
	assert.NotEqual(t, "250", mid)

	c.Advance(CounterDuration)
	assert.Equal(t, "250", doc.ByID("c").Text())
	assert.True(t, counter.Done())
	assert.Zero(t, c.Pending())
}

func TestCounterInstantAndSuffix(t *testing.T) {
	doc := uitest.LoadHTML(t, `<span id="c" data-counter=" 98 " data-suffix="%">0</span>`)
	counter, err := NewCounter(doc.ByID("c"), clock.NewManual(epoch), true)
	require.NoError(t, err)
	counter.Start()
	assert.Equal(t, "98%", doc.ByID("c").Text())
	assert.Equal(t, 98, counter.Target())
}

func TestCounterRejectsBadTarget(t *testing.T) {
	doc := uitest.LoadHTML(t, `<span id="c" data-counter="lots">0</span><span id="d">0</span>`+
		`<span id="e" data-counter="-250">0</span>`)
	for _, id := range []string{"c", "d", "e"} {
		_, err := NewCounter(doc.ByID(id), clock.NewManual(epoch), false)
		assert.Error(t, err, id)
	}
	assert.Equal(t, "0", doc.ByID("e").Text())
}

func TestSectionRevealsOnce(t *testing.T) {
	doc := uitest.Load(t)
	tweener := &motiontest.Tweener{}
	triggers := &motiontest.Watcher{}
	strategy := motion.New(motion.Rich, motion.Deps{ScrollTriggers: triggers, Tweener: tweener})

	section := NewSection(doc, Specs[1], strategy)
	require.NotNil(t, section)
	calls := 0
	section.OnReveal(func() { calls++ })
	section.Arm()
	require.Len(t, triggers.Subs, 1)
	assert.Equal(t, 0.35, triggers.Subs[0].Watch.Threshold)

	triggers.Enter(dom.IDServices)
	section.Reveal()
	assert.True(t, section.Revealed())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, tweener.Count(), "heading and cards tween once each")
	assert.Len(t, tweener.Tweens[1].Tween.Targets, 3)
}

func TestInstallWithInstantStrategy(t *testing.T) {
	doc := uitest.Load(t)
	var buf bytes.Buffer
	logger := logging.New("test", logging.DEBUG, &buf)
	sections := Install(doc, motion.New(motion.Instant, motion.Deps{}), clock.NewManual(epoch), logger)

	require.Len(t, sections, len(Specs))
	for _, s := range sections {
		assert.True(t, s.Revealed(), s.Name())
	}
	for _, el := range doc.QueryAll("[data-reveal]") {
		assert.True(t, el.HasClass(dom.ClassRevealed))
	}
	counters := doc.QueryAll("[data-counter]")
	assert.Equal(t, "250", counters[0].Text())
	assert.Equal(t, "98%", counters[1].Text())
	assert.Equal(t, "0", counters[2].Text())
	assert.Contains(t, buf.String(), "counter skipped")
}

func TestInstallWithTimerFallback(t *testing.T) {
	doc := uitest.Load(t)
	c := clock.NewManual(epoch)
	sections := Install(doc, motion.New(motion.Timer, motion.Deps{Clock: c}), c, logging.Nop())
	for _, s := range sections {
		assert.False(t, s.Revealed())
	}
	c.Advance(motion.TimerFallbackDelay)
	for _, s := range sections {
		assert.True(t, s.Revealed(), s.Name())
	}
	c.Advance(CounterDuration + time.Second)
	assert.Equal(t, "250", doc.QueryAll("[data-counter]")[0].Text())
	assert.Zero(t, c.Pending())
}

func TestInstallSkipsMissingSections(t *testing.T) {
	doc := uitest.LoadHTML(t, `<section id="hero"><h1 data-reveal="hero">Hi</h1></section>`)
	sections := Install(doc, motion.New(motion.Instant, motion.Deps{}), clock.NewManual(epoch), logging.Nop())
	require.Len(t, sections, 1)
	assert.Equal(t, "hero", sections[0].Name())
}
