package model

// RequiredMessage is the single violation reason reported for any
// missing required answer.
const RequiredMessage = "This question is required"

// Validate checks a candidate answer set against a form's required
// questions and returns a violation reason per failing question id.
// The map is empty when submission may proceed. Pure: neither input is
// modified, and every failing question is reported in one pass so the
// UI can highlight them all at once.
func Validate(form Form, answers Answers) map[string]string {
	violations := map[string]string{}

	for _, q := range form.Questions {
		if !q.Required {
			continue
		}
		a := answers[q.ID]
		switch q.Type {
		case TypeMultiChoice:
			if a.Kind != AnswerChoices || len(a.Choices) == 0 {
				violations[q.ID] = RequiredMessage
			}
		default:
			if a.Kind != AnswerText || a.Empty() {
				violations[q.ID] = RequiredMessage
			}
		}
	}

	return violations
}
