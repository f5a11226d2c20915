// Package questions generates multiple-choice math questions through an
// LLM backend and degrades to fixed question lists when the backend fails.
package questions

import (
	"fmt"
	"strings"
)

// Label identifies one of the four answer options.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// CannotAnswer is recorded when the learner skips a question they cannot
// solve. It never matches a correct answer.
const CannotAnswer Label = "CANNOT_ANSWER"

// Labels lists the option labels in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel accepts an option label (case-insensitive) or CannotAnswer.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case LabelA, LabelB, LabelC, LabelD, CannotAnswer:
		return l, nil
	}
	return "", fmt.Errorf("unknown answer label %q", s)
}

// IsOption reports whether l is one of A-D.
func (l Label) IsOption() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD:
		return true
	}
	return false
}

// Difficulty is the difficulty tag attached to a question.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Level is the inferred skill level.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// ParseLevel parses a level name. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case Beginner, Intermediate, Advanced:
		return l, nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Title returns the capitalized level name.
func (l Level) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// TopicsFor returns the topic set a tailored quiz focuses on for level.
// Unknown levels get the beginner topics.
func TopicsFor(level Level) []string {
	switch level {
	case Intermediate:
		return []string{"algebra", "geometry", "statistics"}
	case Advanced:
		return []string{"calculus", "trigonometry", "advanced_algebra"}
	default:
		return []string{"arithmetic", "basic_algebra"}
	}
}

// Question is a single multiple-choice question. It is not modified after
// generation.
type Question struct {
	ID            string           `json:"id"`
	Text          string           `json:"question"`
	Options       map[Label]string `json:"options"`
	CorrectAnswer Label            `json:"correctAnswer"`
	Difficulty    Difficulty       `json:"difficulty"`
	Topic         string           `json:"topic"`
}

// IsCorrect reports whether answer is the correct option.
func (q Question) IsCorrect(answer Label) bool {
	return answer.IsOption() && answer == q.CorrectAnswer
}
