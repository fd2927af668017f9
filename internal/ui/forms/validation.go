// Package forms validates the quote request form and runs its simulated submission.
package forms

import (
	"regexp"
	"strings"

	"github.com/Its-donkey/solar-site/internal/ui/dom"
)

// Field names a form input; the value doubles as the input's id and name.
type Field string

const (
	Name     Field = dom.FieldName
	Email    Field = dom.FieldEmail
	Phone    Field = dom.FieldPhone
	Location Field = dom.FieldLocation
)

// Fields lists the inputs in form order.
var Fields = []Field{Name, Email, Phone, Location}

// Messages shown beside a failing field.
const (
	MsgRequired     = "This field is required."
	MsgEmail        = "Enter a valid email address."
	MsgPhone        = "Enter a valid phone number."
	MsgNameMissing  = "Please enter your name."
	MsgPlaceMissing = "Please tell us your city/state."
)

var (
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	phonePattern = regexp.MustCompile(`[0-9()+\-\s]{7,}`)
)

// ValidEmail accepts anything with an @ followed by a dotted domain.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(strings.ToLower(value))
}

// ValidPhone accepts a run of at least seven digits, parentheses, plus signs, hyphens
// or spaces.
func ValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// Values are the raw input values.
type Values struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// Get returns the value of f.
func (v Values) Get(f Field) string {
	switch f {
	case Name:
		return v.Name
	case Email:
		return v.Email
	case Phone:
		return v.Phone
	case Location:
		return v.Location
	default:
		return ""
	}
}

// Trimmed strips surrounding whitespace from every value.
func (v Values) Trimmed() Values {
	return Values{
		Name:     strings.TrimSpace(v.Name),
		Email:    strings.TrimSpace(v.Email),
		Phone:    strings.TrimSpace(v.Phone),
		Location: strings.TrimSpace(v.Location),
	}
}

// Errors holds one message per failing field. An empty message means valid.
type Errors struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// For returns the message for f.
func (e Errors) For(f Field) string {
	switch f {
	case Name:
		return e.Name
	case Email:
		return e.Email
	case Phone:
		return e.Phone
	case Location:
		return e.Location
	default:
		return ""
	}
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return e == Errors{}
}

// ValidateField applies the blur-time rule for a single field.
func ValidateField(f Field, value string) string {
	switch {
	case strings.TrimSpace(value) == "":
		return MsgRequired
	case f == Email && !ValidEmail(value):
		return MsgEmail
	case f == Phone && !ValidPhone(value):
		return MsgPhone
	default:
		return ""
	}
}

// Validate applies the submit-time rules to every field.
func Validate(v Values) Errors {
	var errs Errors
	if strings.TrimSpace(v.Name) == "" {
		errs.Name = MsgNameMissing
	}
	if !ValidEmail(v.Email) {
		errs.Email = MsgEmail
	}
	if !ValidPhone(v.Phone) {
		errs.Phone = MsgPhone
	}
	if strings.TrimSpace(v.Location) == "" {
		errs.Location = MsgPlaceMissing
	}
	return errs
}
