package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/poker"
)

func TestRankingsExamplesMatchCategories(t *testing.T) {
	t.Parallel()

	all := Rankings()
	require.Len(t, all, 10)
	for i, r := range all {
		t.Run(r.Category.String(), func(t *testing.T) {
			res, err := poker.Evaluate(r.Example)
			require.NoError(t, err)
			assert.Equal(t, r.Category, res.Category)
			if i > 0 {
				assert.Less(t, r.Category, all[i-1].Category, "strongest first")
			}
		})
	}
}

func TestRankingFor(t *testing.T) {
	t.Parallel()
	r, ok := RankingFor(poker.FullHouse)
	require.True(t, ok)
	assert.Equal(t, "Three of a kind plus a pair", r.Description)

	_, ok = RankingFor(poker.InvalidHand)
	assert.False(t, ok)
}

func TestParseAnswer(t *testing.T) {
	t.Parallel()
	tests := map[string]Answer{
		"1": First, "first": First, " A ": First,
		"2": Second, "Second": Second, "b": Second,
		"tie": Tie, "=": Tie,
	}
	for in, want := range tests {
		got, err := ParseAnswer(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAnswer("3")
	assert.Error(t, err)
}

func TestQuestionsUseDistinctCategories(t *testing.T) {
	t.Parallel()
	quiz := NewQuiz(randutil.New(1))

	seen := make(map[poker.Category]bool)
	for i := 0; i < 200; i++ {
		q := quiz.Next()
		assert.NotEqual(t, q.First.Category, q.Second.Category)
		assert.Equal(t, i+1, q.Number)
		seen[q.First.Category] = true
		seen[q.Second.Category] = true

		want, err := q.Correct()
		require.NoError(t, err)
		if q.First.Category > q.Second.Category {
			assert.Equal(t, First, want)
		} else {
			assert.Equal(t, Second, want)
		}
	}
	assert.Len(t, seen, 10, "every category comes up")
}

func TestQuizScoring(t *testing.T) {
	t.Parallel()
	quiz := NewQuiz(randutil.New(7))

	_, err := quiz.Answer(First)
	require.ErrorIs(t, err, ErrNoQuestion)

	q := quiz.Next()
	want, err := q.Correct()
	require.NoError(t, err)

	res, err := quiz.Answer(want)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Greater(t, res.Winner.Score, res.Loser.Score)
	assert.Equal(t, 1, quiz.Score)

	_, err = quiz.Answer(want)
	require.ErrorIs(t, err, ErrAlreadyAnswered)

	quiz.Next()
	res, err = quiz.Answer(Tie)
	require.NoError(t, err)
	assert.False(t, res.Correct, "categories differ so there is never a tie")
	assert.Equal(t, 1, quiz.Score)
	assert.Equal(t, 2, quiz.Asked)
	assert.Equal(t, 0.5, quiz.Accuracy())
}
