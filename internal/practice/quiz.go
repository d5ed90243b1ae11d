package practice

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/holdem-coach/poker"
)

var (
	ErrNoQuestion      = errors.New("no question has been asked")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Answer is a response to a question.
type Answer int

const (
	First Answer = iota + 1
	Second
	Tie
)

func (a Answer) String() string {
	switch a {
	case First:
		return "first"
	case Second:
		return "second"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// ParseAnswer accepts "1", "first" or "a" for the first hand, "2",
// "second" or "b" for the second, and "tie" or "=".
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "first", "a":
		return First, nil
	case "2", "second", "b":
		return Second, nil
	case "tie", "t", "=":
		return Tie, nil
	default:
		return 0, fmt.Errorf("invalid answer %q (want 1, 2 or tie)", s)
	}
}

// Question asks which of two hands is stronger.
type Question struct {
	Number int
	First  Ranking
	Second Ranking
}

// Correct evaluates both example hands and returns the stronger one.
func (q Question) Correct() (Answer, error) {
	a, err := poker.Evaluate(q.First.Example)
	if err != nil {
		return 0, fmt.Errorf("evaluating %s: %w", q.First.Category, err)
	}
	b, err := poker.Evaluate(q.Second.Example)
	if err != nil {
		return 0, fmt.Errorf("evaluating %s: %w", q.Second.Category, err)
	}

	switch a.Compare(b) {
	case 1:
		return First, nil
	case -1:
		return Second, nil
	default:
		return Tie, nil
	}
}

// Quiz hands out questions and keeps score. A Quiz is not safe for
// concurrent use.
type Quiz struct {
	rng      *rand.Rand
	current  *Question
	answered bool

	Score int
	Asked int
}

// NewQuiz creates a quiz drawing questions from rng.
func NewQuiz(rng *rand.Rand) *Quiz {
	return &Quiz{rng: rng}
}

// Next returns a new question about two distinct categories.
func (q *Quiz) Next() Question {
	i := q.rng.IntN(len(rankings))
	j := q.rng.IntN(len(rankings) - 1)
	if j >= i {
		j++
	}

	q.Asked++
	q.current = &Question{Number: q.Asked, First: rankings[i], Second: rankings[j]}
	q.answered = false
	return *q.current
}

// Result is the outcome of answering a question.
type Result struct {
	Correct bool
	Want    Answer
	Winner  poker.HandResult
	Loser   poker.HandResult
}

// Answer scores an answer to the current question.
func (q *Quiz) Answer(a Answer) (Result, error) {
	if q.current == nil {
		return Result{}, ErrNoQuestion
	}
	if q.answered {
		return Result{}, ErrAlreadyAnswered
	}

	want, err := q.current.Correct()
	if err != nil {
		return Result{}, err
	}
	q.answered = true

	res := Result{Correct: a == want, Want: want}
	first := poker.MustEvaluate(q.current.First.Example)
	second := poker.MustEvaluate(q.current.Second.Example)
	res.Winner, res.Loser = first, second
	if want == Second {
		res.Winner, res.Loser = second, first
	}
	if res.Correct {
		q.Score++
	}
	return res, nil
}

// Accuracy returns the fraction of questions answered correctly.
func (q *Quiz) Accuracy() float64 {
	if q.Asked == 0 {
		return 0
	}
	return float64(q.Score) / float64(q.Asked)
}
