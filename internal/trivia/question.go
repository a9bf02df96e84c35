package trivia

import (
	"html"
	"math/rand"
)

// QuestionType distinguishes the two provider question shapes.
type QuestionType string

const (
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeBoolean  QuestionType = "boolean"
)

// Question is an immutable, normalized quiz question. All text fields are
// HTML-entity-decoded, Options is the ordered set actually presented to the
// user, and Index is the question's stable 0-based position in the attempt.
type Question struct {
	Index         int          `json:"index"`
	Category      string       `json:"category"`
	Type          QuestionType `json:"type"`
	Difficulty    string       `json:"difficulty"`
	Text          string       `json:"question"`
	CorrectAnswer string       `json:"correctAnswer"`
	Options       []string     `json:"options"`
}

// HasOption reports whether text is one of the question's presented options.
func (q Question) HasOption(text string) bool {
	for _, opt := range q.Options {
		if opt == text {
			return true
		}
	}
	return false
}

// rawQuestion mirrors the Open Trivia DB question payload.
type rawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// buildQuestion normalizes one provider record. Boolean questions always get
// the fixed {True, False} answer domain regardless of supplied distractors;
// multiple-choice options are shuffled once so the correct answer's position
// is not predictable.
func buildQuestion(raw rawQuestion, index int) Question {
	q := Question{
		Index:         index,
		Category:      html.UnescapeString(raw.Category),
		Type:          QuestionType(raw.Type),
		Difficulty:    raw.Difficulty,
		Text:          html.UnescapeString(raw.Question),
		CorrectAnswer: html.UnescapeString(raw.CorrectAnswer),
	}

	if q.Type == QuestionTypeBoolean {
		q.Options = []string{"True", "False"}
		return q
	}

	options := make([]string, 0, len(raw.IncorrectAnswers)+1)
	options = append(options, q.CorrectAnswer)
	for _, distractor := range raw.IncorrectAnswers {
		options = append(options, html.UnescapeString(distractor))
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	q.Options = options

	return q
}
