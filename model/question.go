package model

// QuestionType is the closed set of question kinds a form can contain.
type QuestionType string

const (
	TypeShortText    QuestionType = "short-text"
	TypeParagraph    QuestionType = "paragraph"
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeDropdown     QuestionType = "dropdown"
	TypeDate         QuestionType = "date"
	TypeTime         QuestionType = "time"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case TypeShortText, TypeParagraph, TypeSingleChoice, TypeMultiChoice, TypeDropdown, TypeDate, TypeTime:
		return true
	}
	return false
}

// IsChoice reports whether answers to this type are picked from declared options.
func (t QuestionType) IsChoice() bool {
	switch t {
	case TypeSingleChoice, TypeMultiChoice, TypeDropdown:
		return true
	}
	return false
}

// DefaultOptions returns the option list a freshly created or
// freshly retyped question of this type starts with.
func (t QuestionType) DefaultOptions() []string {
	if t.IsChoice() {
		return []string{"Option 1"}
	}
	return nil
}

type Question struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options"`
	Required bool         `json:"required"`
}

// clone returns a deep copy, so builder operations never share option slices.
func (q Question) clone() Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}

// QuestionPatch carries partial edits to a question. Nil fields are left alone.
type QuestionPatch struct {
	Title    *string       `json:"title,omitempty"`
	Type     *QuestionType `json:"type,omitempty"`
	Options  *[]string     `json:"options,omitempty"`
	Required *bool         `json:"required,omitempty"`
}

func (q Question) apply(patch QuestionPatch) Question {
	q = q.clone()
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.Options != nil {
		q.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Type != nil && *patch.Type != q.Type {
		q.Type = *patch.Type
		switch {
		case !q.Type.IsChoice():
			q.Options = nil
		case len(q.Options) == 0:
			q.Options = q.Type.DefaultOptions()
		}
	}
	return q
}
