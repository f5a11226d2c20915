package quiz

import "github.com/abhisek/mathquiz/internal/questions"

// Level thresholds in percent. A score exactly on a threshold gets the
// higher level.
const (
	advancedThreshold     = 70
	intermediateThreshold = 40
)

// Score counts answers that match the correct option. Unset and
// cannot-answer slots never count.
func Score(qs []questions.Question, answers []questions.Label) int {
	score := 0
	for i, q := range qs {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			score++
		}
	}
	return score
}

// ClassifyLevel maps an assessment score to a level. The comparison is done
// in integers so the thresholds are exact.
func ClassifyLevel(score, total int) questions.Level {
	if total <= 0 {
		return questions.Beginner
	}
	switch {
	case score*100 >= advancedThreshold*total:
		return questions.Advanced
	case score*100 >= intermediateThreshold*total:
		return questions.Intermediate
	default:
		return questions.Beginner
	}
}

// Percent returns score/total as a percentage rounded half up.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
