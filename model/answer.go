package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerKind discriminates the two shapes an answer can take on the wire.
type AnswerKind int

const (
	// AnswerAbsent is the zero Answer: the question was never answered.
	AnswerAbsent AnswerKind = iota
	// AnswerText is a single free-form string (short-text, paragraph,
	// single-choice, dropdown, date, time).
	AnswerText
	// AnswerChoices is a set of selected option strings (multi-choice).
	AnswerChoices
)

// Answer is the value submitted for one question: a tagged union over
// {string, string set}. The Validator and Aggregator interpret it
// against the question's declared type rather than trusting its shape.
type Answer struct {
	Kind    AnswerKind
	Text    string
	Choices []string
}

func TextAnswer(s string) Answer {
	return Answer{Kind: AnswerText, Text: s}
}

func ChoicesAnswer(opts ...string) Answer {
	return Answer{Kind: AnswerChoices, Choices: opts}
}

// Empty reports whether the answer carries no usable value: absent,
// whitespace-only text, or an empty choice set.
func (a Answer) Empty() bool {
	switch a.Kind {
	case AnswerText:
		return strings.TrimSpace(a.Text) == ""
	case AnswerChoices:
		return len(a.Choices) == 0
	}
	return true
}

func (a Answer) clone() Answer {
	if a.Choices != nil {
		a.Choices = append([]string(nil), a.Choices...)
	}
	return a
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerChoices:
		if a.Choices == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Choices)
	case AnswerText:
		return json.Marshal(a.Text)
	}
	return []byte("null"), nil
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Answer{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var choices []string
		if err := json.Unmarshal(data, &choices); err != nil {
			return fmt.Errorf("answer: invalid choice list: %w", err)
		}
		*a = Answer{Kind: AnswerChoices, Choices: choices}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("answer: expected string or string list: %w", err)
	}
	*a = Answer{Kind: AnswerText, Text: text}
	return nil
}

// Answers maps question ids to submitted values. Keys need not cover
// every question of the form.
type Answers map[string]Answer

// Clone returns a deep copy, detached from the caller's map and slices.
func (as Answers) Clone() Answers {
	if as == nil {
		return nil
	}
	out := make(Answers, len(as))
	for id, a := range as {
		out[id] = a.clone()
	}
	return out
}
