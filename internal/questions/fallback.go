package questions

func opts(a, b, c, d string) map[string]string {
	return map[string]string{"A": a, "B": b, "C": c, "D": d}
}

var assessmentFallback = []rawQuestion{
	{"What is 8 + 5?", opts("13", "12", "14", "15"), "A", "easy", "arithmetic"},
	{"What is 144 ÷ 12?", opts("11", "12", "13", "10"), "B", "easy", "arithmetic"},
	{"Solve for x: 2x + 6 = 14", opts("3", "4", "5", "6"), "B", "medium", "algebra"},
	{"What is the area of a rectangle with length 8 and width 6?", opts("48", "28", "14", "42"), "A", "medium", "geometry"},
	{"If a train travels 60 miles in 2 hours, what is its speed?", opts("20 mph", "25 mph", "30 mph", "35 mph"), "C", "medium", "word_problems"},
	{"What is the derivative of x² + 3x?", opts("x + 3", "2x + 3", "2x²", "x² + 3"), "B", "hard", "calculus"},
	{"Solve: log₂(8) = ?", opts("2", "3", "4", "8"), "B", "hard", "logarithms"},
	{"What is sin(30°)?", opts("0.5", "0.6", "0.7", "1"), "A", "hard", "trigonometry"},
}

var tailoredFallback = map[Level][]rawQuestion{
	Beginner: {
		{"What is 25 + 17?", opts("41", "42", "43", "44"), "B", "easy", "arithmetic"},
		{"What is 9 × 7?", opts("61", "62", "63", "64"), "C", "easy", "arithmetic"},
	},
	Intermediate: {
		{"Solve for y: 3y - 9 = 21", opts("8", "9", "10", "11"), "C", "medium", "algebra"},
		{"What is the circumference of a circle with radius 5?", opts("10π", "15π", "20π", "25π"), "A", "medium", "geometry"},
	},
	Advanced: {
		{"What is the integral of 2x + 1?", opts("x² + x + C", "2x² + x + C", "x² + x", "2x + C"), "A", "hard", "calculus"},
	},
}

// AssessmentFallback returns the fixed assessment list. Each call returns
// a fresh copy.
func AssessmentFallback() []Question {
	return normalize(assessmentPrefix, assessmentFallback, "")
}

// TailoredFallback returns the fixed list for level. Unknown levels get
// the beginner list.
func TailoredFallback(level Level) []Question {
	items, ok := tailoredFallback[level]
	if !ok {
		items = tailoredFallback[Beginner]
		level = Beginner
	}
	return normalize(tailoredPrefix, items, Difficulty(level))
}
