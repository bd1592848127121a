package quiz

import "fmt"

// SetRank returns a copy of set with the given rank for the given
// question replaced by value (nil clears the slot). The input set is
// never mutated, so callers can compare old and new states. Duplicate
// values across ranks are allowed here; uniqueness is enforced by
// Validate at submission time.
func SetRank(set AnswerSet, questionIndex int, rank Rank, value *string) (AnswerSet, error) {
	if questionIndex < 0 || questionIndex >= len(set) {
		return nil, fmt.Errorf("question index %d out of range [0,%d)", questionIndex, len(set))
	}

	next := make(AnswerSet, len(set))
	copy(next, set)

	answer := next[questionIndex]
	switch rank {
	case RankFirst:
		answer.First = value
	case RankSecond:
		answer.Second = value
	case RankThird:
		answer.Third = value
	default:
		return nil, fmt.Errorf("unknown rank %q", rank)
	}
	next[questionIndex] = answer

	return next, nil
}

// IsComplete reports whether every question has all three ranks
// selected with pairwise-distinct options. This predicate gates
// submission.
func IsComplete(set AnswerSet) bool {
	for _, answer := range set {
		if answer.First == nil || answer.Second == nil || answer.Third == nil {
			return false
		}
		if *answer.First == *answer.Second ||
			*answer.First == *answer.Third ||
			*answer.Second == *answer.Third {
			return false
		}
	}
	return len(set) > 0
}

// Validate checks a submitted answer set against the question list:
// one answer per question, every selected value one of that question's
// options, and no option used twice within a question.
func Validate(set AnswerSet, questions []Question) error {
	if len(set) != len(questions) {
		return fmt.Errorf("expected %d answers, got %d", len(questions), len(set))
	}

	for i, answer := range set {
		seen := map[string]bool{}
		for _, pair := range []struct {
			rank  Rank
			value *string
		}{
			{RankFirst, answer.First},
			{RankSecond, answer.Second},
			{RankThird, answer.Third},
		} {
			if pair.value == nil {
				return fmt.Errorf("question %d: %s choice not selected", i+1, pair.rank)
			}
			if !hasOption(questions[i], *pair.value) {
				return fmt.Errorf("question %d: %q is not an option", i+1, *pair.value)
			}
			if seen[*pair.value] {
				return fmt.Errorf("question %d: %q ranked more than once", i+1, *pair.value)
			}
			seen[*pair.value] = true
		}
	}

	return nil
}

func hasOption(q Question, value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
