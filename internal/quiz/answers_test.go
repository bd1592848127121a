package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func completeSet(t *testing.T) AnswerSet {
	t.Helper()
	set := NewAnswerSet(len(Questions))
	for i, q := range Questions {
		set[i] = RankedAnswer{
			First:  strPtr(q.Options[0]),
			Second: strPtr(q.Options[1]),
			Third:  strPtr(q.Options[2]),
		}
	}
	return set
}

func TestSetRankDoesNotMutateInput(t *testing.T) {
	set := NewAnswerSet(len(Questions))

	next, err := SetRank(set, 0, RankFirst, strPtr(Questions[0].Options[0]))
	require.NoError(t, err)

	assert.Nil(t, set[0].First, "input set must stay untouched")
	require.NotNil(t, next[0].First)
	assert.Equal(t, Questions[0].Options[0], *next[0].First)

	// Only the targeted field changes.
	assert.Nil(t, next[0].Second)
	assert.Nil(t, next[0].Third)
	for i := 1; i < len(next); i++ {
		assert.Equal(t, set[i], next[i])
	}
}

func TestSetRankClearsWithNil(t *testing.T) {
	set := completeSet(t)

	next, err := SetRank(set, 2, RankThird, nil)
	require.NoError(t, err)

	assert.Nil(t, next[2].Third)
	assert.NotNil(t, set[2].Third, "input set must stay untouched")
}

func TestSetRankRejectsBadIndexAndRank(t *testing.T) {
	set := NewAnswerSet(len(Questions))

	_, err := SetRank(set, len(set), RankFirst, strPtr("x"))
	assert.Error(t, err)

	_, err = SetRank(set, -1, RankFirst, strPtr("x"))
	assert.Error(t, err)

	_, err = SetRank(set, 0, Rank("fourth"), strPtr("x"))
	assert.Error(t, err)
}

func TestSetRankPermitsDuplicatesAtWriteTime(t *testing.T) {
	set := NewAnswerSet(len(Questions))
	value := strPtr(Questions[0].Options[0])

	next, err := SetRank(set, 0, RankFirst, value)
	require.NoError(t, err)
	next, err = SetRank(next, 0, RankSecond, value)
	require.NoError(t, err)

	// The model stays permissive; Validate catches this at submission.
	assert.Equal(t, *next[0].First, *next[0].Second)
	assert.False(t, IsComplete(next))
}

func TestIsComplete(t *testing.T) {
	assert.False(t, IsComplete(NewAnswerSet(len(Questions))), "empty ranks")
	assert.False(t, IsComplete(AnswerSet{}), "no questions")

	set := completeSet(t)
	assert.True(t, IsComplete(set))

	partial, err := SetRank(set, 4, RankSecond, nil)
	require.NoError(t, err)
	assert.False(t, IsComplete(partial))

	duped, err := SetRank(set, 1, RankThird, set[1].First)
	require.NoError(t, err)
	assert.False(t, IsComplete(duped), "pairwise-distinct ranks required")
}

func TestValidate(t *testing.T) {
	set := completeSet(t)
	assert.NoError(t, Validate(set, Questions))

	short := set[:len(set)-1]
	assert.Error(t, Validate(short, Questions), "length mismatch")

	unknown, err := SetRank(set, 0, RankFirst, strPtr("Join the Sith"))
	require.NoError(t, err)
	assert.Error(t, Validate(unknown, Questions), "value outside option list")

	duped, err := SetRank(set, 3, RankSecond, set[3].First)
	require.NoError(t, err)
	assert.Error(t, Validate(duped, Questions), "option ranked twice")
}

func TestQuestionsShape(t *testing.T) {
	require.Len(t, Questions, 5)
	for _, q := range Questions {
		require.Len(t, q.Options, 4)
		seen := map[string]bool{}
		for _, opt := range q.Options {
			assert.False(t, seen[opt], "options must be distinct")
			seen[opt] = true
		}
	}
}
