package forms

import (
	"fmt"
	"time"

	"github.com/Its-donkey/solar-site/internal/ui/clock"
	"github.com/Its-donkey/solar-site/internal/ui/dom"
	"github.com/Its-donkey/solar-site/logging"
)

const (
	// SubmitDelay simulates the round trip of a real submission.
	SubmitDelay = 600 * time.Millisecond
	// Confirmation is shown once the simulated submission completes.
	Confirmation = "Thanks! We received your request and will reach out within 1 business day."

	logCategory = "cta"
)

// Form owns the quote form's validity flags and in-flight state.
type Form struct {
	form     dom.Element
	inputs   map[Field]dom.Element
	submit   dom.Element
	status   dom.Element
	clock    clock.Clock
	logger   *logging.Logger
	errors   Errors
	inFlight bool
	last     *Submission
}

// New binds to the quote form. It returns nil when the form is missing.
func New(doc dom.Document, c clock.Clock, logger *logging.Logger) *Form {
	form := doc.ByID(dom.IDQuoteForm)
	if form == nil {
		return nil
	}
	f := &Form{
		form:   form,
		inputs: make(map[Field]dom.Element, len(Fields)),
		submit: doc.ByID(dom.IDSubmit),
		status: doc.ByID(dom.IDFormStatus),
		clock:  c,
		logger: logger,
	}
	for _, field := range Fields {
		if el := doc.ByID(string(field)); el != nil {
			f.inputs[field] = el
		}
	}
	return f
}

// Input returns the element for field, or nil.
func (f *Form) Input(field Field) dom.Element {
	return f.inputs[field]
}

// Element is the form itself, for the submit listener.
func (f *Form) Element() dom.Element {
	return f.form
}

// Values reads the current input values. Missing inputs read as empty.
func (f *Form) Values() Values {
	read := func(field Field) string {
		if el := f.inputs[field]; el != nil {
			return el.Value()
		}
		return ""
	}
	return Values{Name: read(Name), Email: read(Email), Phone: read(Phone), Location: read(Location)}
}

// Errors returns the current per-field messages.
func (f *Form) Errors() Errors {
	return f.errors
}

// Submitting reports whether a simulated submission is in flight.
func (f *Form) Submitting() bool {
	return f.inFlight
}

// Last is the most recent accepted submission.
func (f *Form) Last() *Submission {
	return f.last
}

// HandleBlur validates a single field as the visitor leaves it.
func (f *Form) HandleBlur(field Field) {
	el := f.inputs[field]
	if el == nil {
		return
	}
	if msg := ValidateField(field, el.Value()); msg != "" {
		f.showError(field, msg)
		return
	}
	f.clearError(field)
}

// HandleInput clears the field's error while the visitor edits it.
func (f *Form) HandleInput(field Field) {
	if f.inputs[field] == nil {
		return
	}
	f.clearError(field)
}

// HandleSubmit validates every field and, when all pass, starts the simulated
// submission. It reports whether the submission was accepted.
func (f *Form) HandleSubmit() bool {
	if f.inFlight {
		return false
	}
	values := f.Values()
	errs := Validate(values)
	for _, field := range Fields {
		if msg := errs.For(field); msg != "" {
			f.showError(field, msg)
		}
	}
	if !errs.Valid() {
		f.logger.Debug(logCategory, "submission blocked", map[string]any{"errors": fmt.Sprintf("%+v", errs)})
		return false
	}

	f.inFlight = true
	if f.submit != nil {
		f.submit.SetDisabled(true)
	}
	if f.status != nil {
		f.status.AddClass(dom.ClassHidden)
	}
	record := NewSubmission(values, f.clock.Now())
	f.last = &record
	f.logger.Info(logCategory, "CTA submission", record.Fields())
	f.clock.AfterFunc(SubmitDelay, f.complete)
	return true
}

func (f *Form) complete() {
	if f.status != nil {
		f.status.SetText(Confirmation)
		f.status.RemoveClass(dom.ClassHidden)
	} else {
		f.logger.Info(logCategory, Confirmation, nil)
	}
	f.Reset()
	if f.submit != nil {
		f.submit.SetDisabled(false)
	}
	f.inFlight = false
}

// Reset empties every input and clears every error.
func (f *Form) Reset() {
	for _, field := range Fields {
		if el := f.inputs[field]; el != nil {
			el.SetValue("")
			f.clearError(field)
		}
	}
}

func (f *Form) errorNode(field Field) dom.Element {
	return f.form.Query(fmt.Sprintf(`[%s=%q]`, dom.AttrErrorFor, string(field)))
}

func (f *Form) setError(field Field, msg string) {
	switch field {
	case Name:
		f.errors.Name = msg
	case Email:
		f.errors.Email = msg
	case Phone:
		f.errors.Phone = msg
	case Location:
		f.errors.Location = msg
	}
}

func (f *Form) showError(field Field, msg string) {
	f.setError(field, msg)
	if node := f.errorNode(field); node != nil {
		node.SetText(msg)
		node.RemoveClass(dom.ClassHidden)
	}
	if el := f.inputs[field]; el != nil {
		el.SetAttr(dom.AriaInvalid, "true")
	}
}

func (f *Form) clearError(field Field) {
	f.setError(field, "")
	if node := f.errorNode(field); node != nil {
		node.AddClass(dom.ClassHidden)
	}
	if el := f.inputs[field]; el != nil {
		el.RemoveAttr(dom.AriaInvalid)
	}
}
