package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/internal/table"
)

// lineReader reads lines from a reader in the background so a prompt can
// be abandoned when the context is cancelled.
type lineReader struct {
	lines chan string
}

func newLineReader(in io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lr.lines <- scanner.Text()
		}
	}()
	return lr
}

// ReadLine returns the next line, or io.EOF once input is exhausted.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// promptInput asks the human for actions on the terminal.
type promptInput struct {
	lines *lineReader
	out   io.Writer
	st    styles
}

func (p *promptInput) Choose(ctx context.Context, snap game.Snapshot) (table.Choice, error) {
	for {
		fmt.Fprintf(p.out, "%s\n> ", p.st.actions.Render(describeLegal(snap.Legal)))

		line, err := p.lines.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return table.Choice{}, table.ErrQuit
		}
		if err != nil {
			return table.Choice{}, err
		}

		choice, err := parseChoice(line, snap.Legal)
		if errors.Is(err, table.ErrQuit) {
			return table.Choice{}, err
		}
		if err != nil {
			fmt.Fprintln(p.out, p.st.warning.Render(err.Error()))
			continue
		}
		return choice, nil
	}
}

func (p *promptInput) Rejected(choice table.Choice, err error) {
	fmt.Fprintln(p.out, p.st.warning.Render(fmt.Sprintf("Can't %s: %v", choice.Action, err)))
}

// parseChoice reads commands like "c", "call", "r 60", "bet 40", "a" or
// "q". "c" checks when checking is allowed and calls otherwise, and bet and
// raise are interchangeable so "b 60" works when facing a bet.
func parseChoice(line string, legal []game.LegalAction) (table.Choice, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return table.Choice{}, errors.New("enter an action, or q to quit")
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return table.Choice{}, table.ErrQuit
	}

	action, err := game.ParseAction(fields[0])
	if err != nil {
		return table.Choice{}, err
	}

	switch action {
	case game.Call:
		if fields[0] == "c" && has(legal, game.Check) {
			action = game.Check
		}
	case game.Bet:
		if !has(legal, game.Bet) && has(legal, game.Raise) {
			action = game.Raise
		}
	case game.Raise:
		if !has(legal, game.Raise) && has(legal, game.Bet) {
			action = game.Bet
		}
	}

	choice := table.Choice{Action: action}
	if action == game.Bet || action == game.Raise {
		if len(fields) < 2 {
			return table.Choice{}, fmt.Errorf("%s needs an amount, e.g. %q", action, action.String()+" 40")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return table.Choice{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		choice.Amount = amount
	}
	return choice, nil
}

func has(legal []game.LegalAction, action game.Action) bool {
	_, ok := game.Find(legal, action)
	return ok
}

// describeLegal lists the legal actions as a prompt.
func describeLegal(legal []game.LegalAction) string {
	parts := make([]string, 0, len(legal)+1)
	for _, la := range legal {
		switch la.Action {
		case game.Fold:
			parts = append(parts, "[f]old")
		case game.Check:
			parts = append(parts, "[c]heck")
		case game.Call:
			parts = append(parts, fmt.Sprintf("[c]all %d", la.Min))
		case game.Bet:
			parts = append(parts, fmt.Sprintf("[b]et %d-%d", la.Min, la.Max))
		case game.Raise:
			parts = append(parts, fmt.Sprintf("[r]aise to %d-%d", la.Min, la.Max))
		case game.AllIn:
			parts = append(parts, fmt.Sprintf("[a]ll in %d", la.Max))
		}
	}
	parts = append(parts, "[q]uit")
	return strings.Join(parts, "  ")
}
