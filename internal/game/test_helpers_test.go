package game

import (
	"fmt"
	"testing"

	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/poker"
	"github.com/stretchr/testify/require"
)

// tableOf returns n seats with the given stack; seat 0 is the human.
func tableOf(n, chips int) []SeatSpec {
	seats := make([]SeatSpec, n)
	for i := range seats {
		seats[i] = SeatSpec{Name: fmt.Sprintf("Player %d", i), Chips: chips}
	}
	seats[0].Name = "You"
	seats[0].Human = true
	return seats
}

// stackedHand deals a hand from a deck whose top cards are cards, in deal
// order: first hole card for every seat, second hole card for every seat,
// then the five board cards.
func stackedHand(t *testing.T, seats []SeatSpec, bigBlind int, cards string) *RoundState {
	t.Helper()
	deck, err := poker.NewStackedDeck(poker.MustParseCards(cards)...)
	require.NoError(t, err)
	h, err := NewHand(nil, seats, bigBlind, WithDeck(deck))
	require.NoError(t, err)
	return h
}

func newTestHand(t *testing.T, seats []SeatSpec, bigBlind int) *RoundState {
	t.Helper()
	h, err := NewHand(randutil.New(42), seats, bigBlind)
	require.NoError(t, err)
	return h
}

// act applies an action for the seat due to act and fails the test on error.
func act(t *testing.T, h *RoundState, action Action, amount int) *RoundState {
	t.Helper()
	next, err := ApplyAction(h, h.CurrentPlayer, action, amount)
	require.NoError(t, err, "seat %d %s %d", h.CurrentPlayer, action, amount)
	return next
}

func totalChips(h *RoundState) int {
	total := h.Pot.Amount
	for _, p := range h.Players {
		total += p.Chips
	}
	return total
}

// passive plays the cheapest legal action: check, else call.
func passive(h *RoundState) (Action, int) {
	legal := h.LegalActions(h.CurrentPlayer)
	if _, ok := Find(legal, Check); ok {
		return Check, 0
	}
	if _, ok := Find(legal, Call); ok {
		return Call, 0
	}
	return AllIn, 0
}
