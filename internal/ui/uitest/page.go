// Package uitest holds a landing page fixture for controller tests.
package uitest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/solar-site/internal/ui/dom/htmldom"
)

// Page is a trimmed landing page carrying every element the controllers look up.
const Page = `<!doctype html>
<html><body>
<header id="site-header" class="sticky top-0">
  <nav aria-label="Primary">
    <a href="#hero" data-section="hero">Home</a>
    <a href="#services" data-section="services">Services</a>
    <a href="#process" data-section="process">Process</a>
    <a href="#faq" data-section="faq">FAQ</a>
    <a href="#missing" data-section="missing">Gone</a>
  </nav>
  <button id="menu-button" aria-expanded="false" aria-label="Open menu">
    <svg id="icon-menu"></svg><svg id="icon-close" class="hidden"></svg>
  </button>
  <div id="mobile-menu" class="hidden">
    <a href="#hero" data-section="hero">Home</a>
    <a href="#services" data-section="services">Services</a>
    <span class="divider">|</span>
  </div>
</header>
<main>
  <section id="hero"><h1 data-reveal="hero">Power your home</h1><p data-reveal="hero">Clean energy</p></section>
  <section id="services">
    <h2 data-reveal="heading">Services</h2>
    <article data-reveal="card">Install</article><article data-reveal="card">Maintain</article><article data-reveal="card">Monitor</article>
  </section>
  <section id="process"><h2 data-reveal="heading">Process</h2><li data-reveal="step">Survey</li><li data-reveal="step">Install</li></section>
  <section id="impact">
    <h2 data-reveal="heading">Impact</h2>
    <div data-reveal="stat"><span data-counter="250">0</span></div>
    <div data-reveal="stat"><span data-counter="98" data-suffix="%">0</span></div>
    <div data-reveal="stat"><span data-counter="lots">0</span></div>
  </section>
  <section id="testimonials">
    <h2 data-reveal="heading">What neighbours say</h2>
    <div id="testimonial-carousel" data-interval="6000">
      <figure data-slide class="is-active">One</figure>
      <figure data-slide>Two</figure>
      <figure data-slide>Three</figure>
      <button data-slide-dot="0"></button><button data-slide-dot="1"></button><button data-slide-dot="2"></button>
      <button data-carousel-prev>Prev</button><button data-carousel-next>Next</button>
    </div>
  </section>
  <section id="faq">
    <h2 data-reveal="heading">FAQ</h2>
    <div data-accordion-item>
      <button data-accordion-trigger aria-expanded="false">Cost?</button>
      <div data-accordion-panel data-scroll-height="120" style="height: 0px">Less than you think.</div>
    </div>
    <div data-accordion-item>
      <button data-accordion-trigger aria-expanded="false">Time?</button>
      <div data-accordion-panel data-scroll-height="80" style="height: 0px">One day.</div>
    </div>
    <div data-accordion-item>
      <button data-accordion-trigger aria-expanded="false">Warranty?</button>
      <div data-accordion-panel data-scroll-height="60" style="height: 0px">25 years.</div>
    </div>
  </section>
  <section id="cta">
    <h2 data-reveal="heading">Get a quote</h2>
    <p data-reveal="copy">Free assessment</p>
    <form id="quote-form" data-reveal="form" novalidate>
      <input id="name" name="name" value="">
      <p data-error-for="name" class="hidden"></p>
      <input id="email" name="email" value="">
      <p data-error-for="email" class="hidden"></p>
      <input id="phone" name="phone" value="">
      <p data-error-for="phone" class="hidden"></p>
      <input id="location" name="location" value="">
      <p data-error-for="location" class="hidden"></p>
      <button id="cta-submit" type="submit">Get my quote</button>
      <p id="form-status" class="hidden" role="status"></p>
    </form>
  </section>
</main>
<footer>&copy; <span id="year"></span></footer>
</body></html>`

// Load parses Page.
func Load(t testing.TB) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(Page)
	require.NoError(t, err)
	return doc
}

// LoadHTML parses an arbitrary fixture.
func LoadHTML(t testing.TB, markup string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(markup)
	require.NoError(t, err)
	return doc
}
