package model

import "math"

// OptionCount is one row of a choice question's summary.
type OptionCount struct {
	Option  string `json:"option"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Statistic holds per-option counts for one choice-type question, in
// the question's declared option order so reports render the same way
// every time. Count is the canonical value; Percent is rounded for
// display only.
type Statistic struct {
	Options []OptionCount `json:"options"`
}

// Count returns the count for one option, 0 when the option is unknown.
func (s *Statistic) Count(option string) int {
	for _, oc := range s.Options {
		if oc.Option == option {
			return oc.Count
		}
	}
	return 0
}

// Summarize computes per-question statistics over a set of responses.
// Choice-type questions (single-choice, dropdown, multi-choice) get an
// option-keyed Statistic; every other type maps to nil, and the
// reporting layer lists raw answers instead.
//
// Single-choice and dropdown answers must equal a declared option
// exactly (case-sensitive, no trimming) to count; a multi-choice answer
// increments every option it contains. Options nobody picked still
// appear with count 0.
func Summarize(form Form, responses []Response) map[string]*Statistic {
	stats := make(map[string]*Statistic, len(form.Questions))
	total := len(responses)

	for _, q := range form.Questions {
		if !q.Type.IsChoice() {
			stats[q.ID] = nil
			continue
		}

		counts := make([]OptionCount, len(q.Options))
		for i, opt := range q.Options {
			counts[i].Option = opt
		}

		for _, r := range responses {
			a, ok := r.Answers[q.ID]
			if !ok {
				continue
			}
			for i, opt := range q.Options {
				if answerMatches(q.Type, a, opt) {
					counts[i].Count++
				}
			}
		}

		for i := range counts {
			counts[i].Percent = percent(counts[i].Count, total)
		}
		stats[q.ID] = &Statistic{Options: counts}
	}

	return stats
}

func answerMatches(t QuestionType, a Answer, option string) bool {
	if t == TypeMultiChoice {
		if a.Kind != AnswerChoices {
			return false
		}
		for _, c := range a.Choices {
			if c == option {
				return true
			}
		}
		return false
	}
	return a.Kind == AnswerText && a.Text == option
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
