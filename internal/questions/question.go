// Package questions loads the lesson, review and skip-quiz question banks
// and answers lookups by completion item.
package questions

import (
	"errors"
	"strings"

	"github.com/abhisek/bodypath/internal/progress"
)

// ErrNotFound is returned when no questions exist for an item.
var ErrNotFound = errors.New("questions not found")

// Type is the question format.
type Type string

const (
	TypeMCQ            Type = "mcq"
	TypeIllustratedMCQ Type = "illustratedMCQ"
	TypeFillInBlank    Type = "fillInTheBlank"
	TypeAnswerYourself Type = "answerYourself"
)

// Option is one choice of a multiple-choice question.
type Option struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Image   string `json:"image,omitempty"`
	Correct bool   `json:"correct"`
}

// Question is a single quiz item.
type Question struct {
	ID            int      `json:"id"`
	Type          Type     `json:"type"`
	Question      string   `json:"question"`
	Image         string   `json:"image,omitempty"`
	Options       []Option `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty"`
	GradingNotes  string   `json:"gradingNotes,omitempty"`
}

// Gradable reports whether Check can mark an answer. Free-text
// answerYourself questions are graded by a person.
func (q Question) Gradable() bool {
	return q.Type != TypeAnswerYourself
}

// Check reports whether answer is correct. Multiple-choice answers are
// option ids; blanks are compared case-insensitively after trimming.
func (q Question) Check(answer string) bool {
	switch q.Type {
	case TypeMCQ, TypeIllustratedMCQ:
		return answer == q.CorrectAnswer
	case TypeFillInBlank:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}

// Provider serves questions for a completion item.
type Provider interface {
	// Questions returns the item's questions, or an empty slice if there
	// are none.
	Questions(ref progress.ItemRef) []Question
	Exists(ref progress.ItemRef) bool
}
