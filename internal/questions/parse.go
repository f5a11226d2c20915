package questions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mathquiz/internal/llm"
)

// ID prefixes assigned per call type.
const (
	assessmentPrefix = "assessment"
	tailoredPrefix   = "quiz"
)

// rawQuestion is one generated item before normalization.
type rawQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Difficulty    string            `json:"difficulty"`
	Topic         string            `json:"topic"`
}

// ParseAssessment parses a reply to the assessment prompt.
func ParseAssessment(text string) ([]Question, error) {
	items, err := decodeList(text)
	if err != nil {
		return nil, err
	}
	return normalize(assessmentPrefix, items, ""), nil
}

// ParseTailored parses a reply to the tailored prompt. Items without a
// difficulty take the level name.
func ParseTailored(text string, level Level) ([]Question, error) {
	items, err := decodeList(text)
	if err != nil {
		return nil, err
	}
	return normalize(tailoredPrefix, items, Difficulty(level)), nil
}

// decodeList validates text against ListSchema and decodes it.
// Failures are *llm.ErrInvalidResponse.
func decodeList(text string) ([]rawQuestion, error) {
	raw := []byte(stripFence(text))
	if err := llm.ValidateJSON(ListSchema, raw); err != nil {
		return nil, err
	}

	var items []rawQuestion
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: text, Err: fmt.Errorf("decode questions: %w", err)}
	}
	return items, nil
}

// stripFence removes a surrounding markdown code fence, with or without
// a language tag.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func normalize(prefix string, items []rawQuestion, defaultDifficulty Difficulty) []Question {
	out := make([]Question, len(items))
	for i, it := range items {
		opts := make(map[Label]string, len(Labels))
		for _, l := range Labels {
			opts[l] = strings.TrimSpace(it.Options[string(l)])
		}

		difficulty := Difficulty(strings.ToLower(strings.TrimSpace(it.Difficulty)))
		if difficulty == "" {
			difficulty = defaultDifficulty
		}

		out[i] = Question{
			ID:            fmt.Sprintf("%s-%d", prefix, i),
			Text:          strings.TrimSpace(it.Question),
			Options:       opts,
			CorrectAnswer: Label(strings.ToUpper(strings.TrimSpace(it.CorrectAnswer))),
			Difficulty:    difficulty,
			Topic:         strings.TrimSpace(it.Topic),
		}
	}
	return out
}
