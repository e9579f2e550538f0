package model

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

// Form is the root aggregate: an ordered question list plus metadata.
// All builder operations are copy-on-write: they return a new Form and
// never mutate the receiver, so a stale reference held by a caller
// stays exactly as it was.
type Form struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// NewForm creates a form with a fresh id and creation timestamp.
// Empty titles are allowed, the UI supplies its own placeholder.
// Questions arriving without an id get a fresh one.
func NewForm(title, description string, questions []Question) Form {
	return Form{
		ID:          newID(),
		Title:       title,
		Description: description,
		Questions:   normalizeQuestions(questions),
		CreatedAt:   time.Now(),
	}
}

func normalizeQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.clone()
		if out[i].ID == "" {
			out[i].ID = newID()
		}
	}
	return out
}

func (f Form) clone() Form {
	qs := make([]Question, len(f.Questions))
	for i, q := range f.Questions {
		qs[i] = q.clone()
	}
	f.Questions = qs
	return f
}

// FormPatch carries partial edits to a form. Nil fields are left alone;
// id and creation time are never touched.
type FormPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Questions   *[]Question `json:"questions,omitempty"`
}

func (f Form) Merge(patch FormPatch) Form {
	f = f.clone()
	if patch.Title != nil {
		f.Title = *patch.Title
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Questions != nil {
		f.Questions = normalizeQuestions(*patch.Questions)
	}
	return f
}

// Check verifies the structural invariants of the question list:
// every type must be known, ids must be unique among siblings, and
// non-choice questions must not declare options.
func (f Form) Check() error {
	seen := make(map[string]bool, len(f.Questions))
	for _, q := range f.Questions {
		if !q.Type.IsValid() {
			return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if !q.Type.IsChoice() && len(q.Options) > 0 {
			return fmt.Errorf("question %q: type %q does not take options", q.ID, q.Type)
		}
	}
	return nil
}

// AddQuestion appends a new question of the given type with a fresh id
// and type-appropriate default options.
func (f Form) AddQuestion(t QuestionType) Form {
	f = f.clone()
	f.Questions = append(f.Questions, Question{
		ID:      newID(),
		Title:   "Untitled Question",
		Type:    t,
		Options: t.DefaultOptions(),
	})
	return f
}

// RemoveQuestion drops the question with the given id; no-op if absent.
func (f Form) RemoveQuestion(id string) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID == id {
			f.Questions = append(f.Questions[:i], f.Questions[i+1:]...)
			break
		}
	}
	return f
}

// DuplicateQuestion clones the question with the given id under a fresh
// id, marks its title as a copy, and inserts it right after the
// original. No-op if the id is absent.
func (f Form) DuplicateQuestion(id string) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID != id {
			continue
		}
		dup := q.clone()
		dup.ID = newID()
		dup.Title = fmt.Sprintf("%s (Copy)", q.Title)

		f.Questions = append(f.Questions, Question{})
		copy(f.Questions[i+2:], f.Questions[i+1:])
		f.Questions[i+1] = dup
		break
	}
	return f
}

// MoveQuestion moves the question with the given id to index `to`,
// clamped to the list bounds. List order is the only order: display and
// report columns follow it.
func (f Form) MoveQuestion(id string, to int) Form {
	f = f.clone()
	from := -1
	for i, q := range f.Questions {
		if q.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return f
	}
	if to < 0 {
		to = 0
	}
	if to >= len(f.Questions) {
		to = len(f.Questions) - 1
	}

	q := f.Questions[from]
	f.Questions = append(f.Questions[:from], f.Questions[from+1:]...)
	f.Questions = append(f.Questions, Question{})
	copy(f.Questions[to+1:], f.Questions[to:])
	f.Questions[to] = q
	return f
}

// UpdateQuestion applies a partial edit to the question with the given
// id. Switching to a non-choice type clears options; switching to a
// choice type seeds a placeholder option when none remain.
func (f Form) UpdateQuestion(id string, patch QuestionPatch) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID == id {
			f.Questions[i] = q.apply(patch)
			break
		}
	}
	return f
}

// AddOption appends a numbered placeholder option to a question.
func (f Form) AddOption(questionID string) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID == questionID {
			f.Questions[i].Options = append(f.Questions[i].Options, fmt.Sprintf("Option %d", len(q.Options)+1))
			break
		}
	}
	return f
}

// UpdateOption replaces the option at idx; no-op when out of range.
func (f Form) UpdateOption(questionID string, idx int, value string) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID == questionID && idx >= 0 && idx < len(q.Options) {
			f.Questions[i].Options[idx] = value
			break
		}
	}
	return f
}

// RemoveOption drops the option at idx; no-op when out of range.
func (f Form) RemoveOption(questionID string, idx int) Form {
	f = f.clone()
	for i, q := range f.Questions {
		if q.ID == questionID && idx >= 0 && idx < len(q.Options) {
			f.Questions[i].Options = append(f.Questions[i].Options[:idx], f.Questions[i].Options[idx+1:]...)
			break
		}
	}
	return f
}

// Question looks a question up by id.
func (f Form) Question(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
