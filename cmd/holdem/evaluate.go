package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem-coach/internal/practice"
	"github.com/lox/holdem-coach/poker"
)

// EvaluateCmd prints the best hand that can be made from 5 to 7 cards.
type EvaluateCmd struct {
	Cards []string `arg:"" help:"Cards such as Ah Kd 10c, 5 to 7 of them"`
}

func (c *EvaluateCmd) Run(g *Globals) error {
	return evaluate(os.Stdout, newStyles(os.Stdout, g.NoColor), c.Cards)
}

func evaluate(out io.Writer, st styles, args []string) error {
	cards, err := poker.ParseCards(strings.Join(args, " "))
	if err != nil {
		return err
	}
	res, err := poker.Evaluate(cards)
	if err != nil {
		return fmt.Errorf("evaluating %d cards: %w", len(cards), err)
	}

	fmt.Fprintf(out, "Cards:    %s\n", st.cards(cards))
	fmt.Fprintf(out, "Hand:     %s\n", st.success.Render(res.Description))
	fmt.Fprintf(out, "Best 5:   %s\n", st.cards(res.Best))
	if r, ok := practice.RankingFor(res.Category); ok {
		fmt.Fprintf(out, "Category: %s (%s)\n", res.Category, r.Description)
	}
	fmt.Fprintf(out, "Score:    %d\n", res.Score)
	return nil
}
