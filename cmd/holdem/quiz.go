package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/lox/holdem-coach/internal/practice"
	"github.com/lox/holdem-coach/internal/randutil"
)

// QuizCmd asks which of two hands ranks higher.
type QuizCmd struct {
	Questions int   `short:"n" default:"10" help:"Number of questions (0 asks until you quit)"`
	Seed      int64 `help:"RNG seed (0 picks one from the clock)"`
}

func (c *QuizCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.quiz(ctx, newLineReader(os.Stdin), os.Stdout, newStyles(os.Stdout, g.NoColor))
}

func (c *QuizCmd) quiz(ctx context.Context, lines *lineReader, out io.Writer, st styles) error {
	rng, _ := randutil.NewOrTime(c.Seed)
	quiz := practice.NewQuiz(rng)

	fmt.Fprintln(out, st.title.Render("Hand Rankings Quiz"))
	fmt.Fprintln(out, "Which hand wins? Answer 1, 2 or tie. q quits.")

	for c.Questions == 0 || quiz.Asked < c.Questions {
		q := quiz.Next()
		fmt.Fprintf(out, "\nQuestion %d\n", q.Number)
		fmt.Fprintf(out, "  1) %s\n", st.cards(q.First.Example))
		fmt.Fprintf(out, "  2) %s\n", st.cards(q.Second.Example))

		answer, err := readAnswer(ctx, lines, out, st)
		if errors.Is(err, errStopQuiz) {
			// the unanswered question does not count
			quiz.Asked--
			break
		}
		if err != nil {
			return err
		}

		res, err := quiz.Answer(answer)
		if err != nil {
			return err
		}
		verdict := fmt.Sprintf("%s beats %s", res.Winner.Description, res.Loser.Description)
		if res.Correct {
			fmt.Fprintln(out, st.success.Render("Correct! "+verdict))
		} else {
			fmt.Fprintln(out, st.warning.Render("Wrong. "+verdict))
		}
	}

	fmt.Fprintf(out, "\nScore: %d/%d (%.0f%%)\n", quiz.Score, quiz.Asked, quiz.Accuracy()*100)
	return nil
}

var errStopQuiz = errors.New("quiz stopped")

func readAnswer(ctx context.Context, lines *lineReader, out io.Writer, st styles) (practice.Answer, error) {
	for {
		fmt.Fprint(out, "> ")
		line, err := lines.ReadLine(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return 0, errStopQuiz
		}
		if err != nil {
			return 0, err
		}
		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return 0, errStopQuiz
		}

		answer, err := practice.ParseAnswer(line)
		if err != nil {
			fmt.Fprintln(out, st.warning.Render(err.Error()))
			continue
		}
		return answer, nil
	}
}
