package forms

import (
	"time"

	"github.com/google/uuid"
)

// Source tags every record produced by this form.
const Source = "solar-site-cta"

// Submission is the record written to the diagnostic channel on a valid submit.
type Submission struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// NewSubmission builds the record from trimmed values.
func NewSubmission(v Values, now time.Time) Submission {
	v = v.Trimmed()
	return Submission{
		Reference: uuid.NewString(),
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Location:  v.Location,
		Source:    Source,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}

// Fields flattens the record for structured logging.
func (s Submission) Fields() map[string]any {
	return map[string]any{
		"reference": s.Reference,
		"name":      s.Name,
		"email":     s.Email,
		"phone":     s.Phone,
		"location":  s.Location,
		"source":    s.Source,
		"timestamp": s.Timestamp,
	}
}
