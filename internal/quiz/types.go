package quiz

// Rank identifies one of the three preference slots in a RankedAnswer.
type Rank string

const (
	RankFirst  Rank = "first"
	RankSecond Rank = "second"
	RankThird  Rank = "third"
)

// Question is a single quiz prompt with exactly four options. The
// question list is static configuration and never mutated.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// RankedAnswer holds the top-three choices for one question. Nil means
// the slot has not been selected yet.
type RankedAnswer struct {
	First  *string `json:"first"`
	Second *string `json:"second"`
	Third  *string `json:"third"`
}

// AnswerSet is one RankedAnswer per question, in question order.
type AnswerSet []RankedAnswer

// NewAnswerSet returns an empty answer set sized for n questions.
func NewAnswerSet(n int) AnswerSet {
	return make(AnswerSet, n)
}
