package dom

// Element ids the page template must render.
const (
	IDSiteHeader  = "site-header"
	IDMenuButton  = "menu-button"
	IDMobileMenu  = "mobile-menu"
	IDIconMenu    = "icon-menu"
	IDIconClose   = "icon-close"
	IDYear        = "year"
	IDHero        = "hero"
	IDServices    = "services"
	IDProcess     = "process"
	IDImpact      = "impact"
	IDTestimonial = "testimonials"
	IDCarousel    = "testimonial-carousel"
	IDFAQ         = "faq"
	IDCTA         = "cta"
	IDQuoteForm   = "quote-form"
	IDSubmit      = "cta-submit"
	IDFormStatus  = "form-status"
)

// Form field ids; each doubles as the field's name attribute.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
)

// Data attributes.
const (
	AttrSection          = "data-section"
	AttrReveal           = "data-reveal"
	AttrCounter          = "data-counter"
	AttrSuffix           = "data-suffix"
	AttrSlide            = "data-slide"
	AttrSlideDot         = "data-slide-dot"
	AttrCarouselPrev     = "data-carousel-prev"
	AttrCarouselNext     = "data-carousel-next"
	AttrInterval         = "data-interval"
	AttrAccordionItem    = "data-accordion-item"
	AttrAccordionTrigger = "data-accordion-trigger"
	AttrAccordionPanel   = "data-accordion-panel"
	AttrErrorFor         = "data-error-for"
)

// ARIA attributes.
const (
	AriaExpanded = "aria-expanded"
	AriaLabel    = "aria-label"
	AriaHidden   = "aria-hidden"
	AriaCurrent  = "aria-current"
	AriaInvalid  = "aria-invalid"
)

// Classes toggled by the controllers.
const (
	ClassHidden     = "hidden"
	ClassShadow     = "shadow-sm"
	ClassHeaderTint = "bg-white/80"
	ClassActiveLink = "text-solarGreen"
	ClassActiveBold = "font-semibold"
	ClassRevealed   = "is-revealed"
	ClassActive     = "is-active"
	ClassOpen       = "is-open"
)

// Selectors.
const (
	SelectorDesktopNavLinks = `header nav[aria-label="Primary"] a[data-section]`
	SelectorMobileNavLinks  = `#mobile-menu a[data-section]`
)

// Contract lists a selector for every element some controller looks up. A page that
// misses one leaves that feature inert.
var Contract = []string{
	"#" + IDSiteHeader,
	SelectorDesktopNavLinks,
	"#" + IDMenuButton,
	"#" + IDMobileMenu,
	"#" + IDIconMenu,
	"#" + IDIconClose,
	SelectorMobileNavLinks,
	"#" + IDHero + ` [data-reveal="hero"]`,
	"#" + IDServices + ` [data-reveal="card"]`,
	"#" + IDProcess + ` [data-reveal="step"]`,
	"#" + IDImpact + ` [data-reveal="stat"]`,
	"#" + IDImpact + " [" + AttrCounter + "]",
	"#" + IDTestimonial + ` [data-reveal="heading"]`,
	"#" + IDCarousel + " [" + AttrSlide + "]",
	"#" + IDCarousel + " [" + AttrSlideDot + "]",
	"#" + IDCarousel + " [" + AttrCarouselPrev + "]",
	"#" + IDCarousel + " [" + AttrCarouselNext + "]",
	"#" + IDFAQ + " [" + AttrAccordionItem + "] [" + AttrAccordionTrigger + "]",
	"#" + IDFAQ + " [" + AttrAccordionItem + "] [" + AttrAccordionPanel + "]",
	"#" + IDCTA + ` [data-reveal="form"]`,
	"#" + IDQuoteForm + " #" + FieldName,
	"#" + IDQuoteForm + " #" + FieldEmail,
	"#" + IDQuoteForm + " #" + FieldPhone,
	"#" + IDQuoteForm + " #" + FieldLocation,
	"[" + AttrErrorFor + `="` + FieldName + `"]`,
	"[" + AttrErrorFor + `="` + FieldEmail + `"]`,
	"[" + AttrErrorFor + `="` + FieldPhone + `"]`,
	"[" + AttrErrorFor + `="` + FieldLocation + `"]`,
	"#" + IDSubmit,
	"#" + IDFormStatus,
	"#" + IDYear,
}

// Missing returns the Contract selectors doc does not satisfy.
func Missing(doc Document) []string {
	var out []string
	for _, sel := range Contract {
		if doc.Query(sel) == nil {
			out = append(out, sel)
		}
	}
	return out
}
