package questions

import (
	"fmt"
	"strings"
)

// SystemPrompt is sent with every generation request.
const SystemPrompt = "You are a math teacher creating quiz questions. Always respond with valid JSON format only, no additional text."

const (
	// AssessmentSize is the number of questions the assessment asks for.
	AssessmentSize = 8

	// TailoredSize is the number of questions a tailored quiz asks for.
	TailoredSize = 10
)

const assessmentPrompt = `Generate 8 math questions for level assessment with varying difficulty (2 easy, 3 medium, 3 hard).
Include topics like basic arithmetic, algebra, geometry, and word problems.

Return JSON array format:
[
  {
    "question": "What is 15 + 27?",
    "options": {"A": "42", "B": "41", "C": "43", "D": "40"},
    "correctAnswer": "A",
    "difficulty": "easy",
    "topic": "arithmetic"
  }
]`

const tailoredPromptTemplate = `Generate 10 math questions for %s level focusing on %s.

Return JSON array format:
[
  {
    "question": "Question text here",
    "options": {"A": "option1", "B": "option2", "C": "option3", "D": "option4"},
    "correctAnswer": "A",
    "difficulty": "%s",
    "topic": "topic_name"
  }
]`

// AssessmentPrompt returns the user message for the assessment request.
func AssessmentPrompt() string {
	return assessmentPrompt
}

// TailoredPrompt returns the user message for a tailored quiz request.
func TailoredPrompt(level Level, topics []string) string {
	return fmt.Sprintf(tailoredPromptTemplate, level, strings.Join(topics, ", "), level)
}
