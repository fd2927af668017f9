package carousel

import (
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
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newCarousel(t *testing.T, mode motion.Mode) (*Carousel, *clock.Manual, dom.Document, *motiontest.Tweener) {
	t.Helper()
	doc := uitest.Load(t)
	c := clock.NewManual(time.Unix(0, 0))
	tweener := &motiontest.Tweener{}
	strategy := motion.New(mode, motion.Deps{
		ScrollTriggers: &motiontest.Watcher{},
		Intersections:  &motiontest.Watcher{},
		Tweener:        tweener,
		Clock:          c,
	})
	car := New(doc, strategy, c)
	require.NotNil(t, car)
	return car, c, doc, tweener
}

func TestInitialState(t *testing.T) {
	car, _, doc, _ := newCarousel(t, motion.Intersection)
	assert.Equal(t, 3, car.Len())
	assert.Equal(t, 0, car.Active())
	assert.Equal(t, DefaultInterval, car.Interval())
	slides := doc.QueryAll("[data-slide]")
	assert.Equal(t, "false", dom.AttrOr(slides[0], dom.AriaHidden, ""))
	assert.Equal(t, "true", dom.AttrOr(slides[1], dom.AriaHidden, ""))
	assert.NotNil(t, car.PrevButton())
	assert.NotNil(t, car.NextButton())
	assert.Len(t, car.Dots(), 3)
}

func TestGoToNormalizes(t *testing.T) {
	car, _, _, _ := newCarousel(t, motion.Intersection)
	for _, i := range []int{-7, -1, 0, 1, 2, 3, 4, 100, -100} {
		car.GoTo(i)
		assert.GreaterOrEqual(t, car.Active(), 0, "goTo(%d)", i)
		assert.Less(t, car.Active(), car.Len(), "goTo(%d)", i)
	}
	car.GoTo(-1)
	assert.Equal(t, 2, car.Active())
	car.GoTo(4)
	assert.Equal(t, 1, car.Active())
}

func TestGoToActiveIsNoop(t *testing.T) {
	car, _, _, tweener := newCarousel(t, motion.Rich)
	assert.False(t, car.GoTo(0))
	assert.False(t, car.GoTo(3))
	assert.Zero(t, car.Transitions())
	assert.Zero(t, tweener.Count())

	assert.True(t, car.GoTo(1))
	assert.Equal(t, 1, car.Transitions())
	assert.Equal(t, 2, tweener.Count(), "fade out and fade in")
}

func TestNextPreviousAndDots(t *testing.T) {
	car, _, doc, _ := newCarousel(t, motion.Intersection)
	car.Previous()
	assert.Equal(t, 2, car.Active())
	car.Next()
	assert.Equal(t, 0, car.Active())

	dots := doc.QueryAll("[data-slide-dot]")
	assert.True(t, car.HandleDot(dots[2]))
	assert.Equal(t, 2, car.Active())
	assert.True(t, dots[2].HasClass(dom.ClassActive))
	assert.Equal(t, "true", dom.AttrOr(dots[2], dom.AriaCurrent, ""))
	_, current := dots[0].Attr(dom.AriaCurrent)
	assert.False(t, current)

	slides := doc.QueryAll("[data-slide]")
	assert.True(t, slides[2].HasClass(dom.ClassActive))
	assert.False(t, slides[0].HasClass(dom.ClassActive))
	assert.Equal(t, "true", dom.AttrOr(slides[0], dom.AriaHidden, ""))
}

func TestAutoplayPauseResume(t *testing.T) {
	car, c, _, _ := newCarousel(t, motion.Intersection)
	car.Start()
	assert.True(t, car.Playing())

	c.Advance(DefaultInterval)
	assert.Equal(t, 1, car.Active())

	car.Pause()
	c.Advance(3 * DefaultInterval)
	assert.Equal(t, 1, car.Active())

	car.Resume()
	c.Advance(DefaultInterval)
	assert.Equal(t, 2, car.Active())

	car.Stop()
	car.Resume()
	assert.False(t, car.Playing())
	assert.Zero(t, c.Pending())
}

func TestManualNavigationKeepsAutoplaySchedule(t *testing.T) {
	car, c, _, _ := newCarousel(t, motion.Intersection)
	car.Start()
	c.Advance(DefaultInterval - time.Second)
	car.Next()
	c.Advance(time.Second)
	assert.Equal(t, 2, car.Active(), "the tick lands on the original schedule")
	car.Stop()
}

func TestAutoplayDisabledUnderReducedMotion(t *testing.T) {
	car, c, _, _ := newCarousel(t, motion.Instant)
	car.Start()
	assert.False(t, car.Playing())
	c.Advance(10 * DefaultInterval)
	assert.Equal(t, 0, car.Active())
}

func TestCustomIntervalAndInertCarousel(t *testing.T) {
	doc := uitest.LoadHTML(t, `<div id="testimonial-carousel" data-interval="2500"><div data-slide>a</div></div>`)
	c := clock.NewManual(time.Unix(0, 0))
	car := New(doc, motion.New(motion.Timer, motion.Deps{Clock: c}), c)
	require.NotNil(t, car)
	assert.Equal(t, 2500*time.Millisecond, car.Interval())
	car.Start()
	assert.False(t, car.Playing(), "a single slide never autoplays")
	assert.False(t, car.Next())

	empty := uitest.LoadHTML(t, `<div id="testimonial-carousel"></div>`)
	assert.Nil(t, New(empty, motion.New(motion.Instant, motion.Deps{}), c))
}
