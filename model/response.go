package model

import "time"

// Response is one respondent's submitted answer set against a form.
// It is never mutated after creation and only goes away when its form
// is deleted.
type Response struct {
	ID          string    `json:"id"`
	FormID      string    `json:"formId"`
	Answers     Answers   `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewResponse builds a response for answers already cleared by
// Validate. The answer map is deep-copied so later mutation of the
// caller's map cannot leak into the stored record.
func NewResponse(form Form, answers Answers) Response {
	return Response{
		ID:          newID(),
		FormID:      form.ID,
		Answers:     answers.Clone(),
		SubmittedAt: time.Now(),
	}
}
