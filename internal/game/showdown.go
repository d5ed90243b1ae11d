package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-coach/poker"
)

// awardUncontested gives the whole pot to the last player standing. Their
// cards are turned face up.
func (h *RoundState) awardUncontested(seat int) {
	h.revealHoleCards(seat)
	h.award([]int{seat})

	p := h.Players[seat]
	h.Message = fmt.Sprintf("%s wins %d - everyone else folded", p.Name, p.Won)
	h.finish()
}

// showdown evaluates every hand still in contention and splits the pot
// between the best of them.
func (h *RoundState) showdown() {
	h.Street = Showdown
	h.Showdown = h.Showdown[:0]

	var best poker.Score
	var winners []int
	for _, seat := range h.contenders() {
		h.revealHoleCards(seat)
		p := h.Players[seat]

		cards := make([]poker.Card, 0, len(p.HoleCards)+len(h.Community))
		cards = append(cards, p.HoleCards...)
		cards = append(cards, h.Community...)
		result, err := poker.Evaluate(cards)
		if err != nil {
			// Only reachable with a malformed board; the seat cannot win.
			result = poker.HandResult{Description: err.Error()}
		}
		p.HandDescription = result.Description
		h.Showdown = append(h.Showdown, ShowdownResult{Seat: seat, Hand: result})

		switch {
		case result.Score > best:
			best = result.Score
			winners = []int{seat}
		case result.Score == best && best > 0:
			winners = append(winners, seat)
		}
	}

	h.award(winners)
	for i := range h.Showdown {
		h.Showdown[i].Won = h.Players[h.Showdown[i].Seat].Won
	}

	if len(winners) == 1 {
		p := h.Players[winners[0]]
		h.Message = fmt.Sprintf("%s wins %d with %s", p.Name, p.Won, p.HandDescription)
	} else {
		names := make([]string, len(winners))
		for i, seat := range winners {
			names[i] = h.Players[seat].Name
		}
		desc := ""
		if len(winners) > 0 {
			desc = h.Players[winners[0]].HandDescription
		}
		h.Message = fmt.Sprintf("Split pot between %s with %s", strings.Join(names, ", "), desc)
	}
	h.finish()
}

// award pays the pot out to winners.
func (h *RoundState) award(winners []int) {
	for seat, amount := range h.Pot.Award(winners, len(h.Players)) {
		p := h.Players[seat]
		p.Chips += amount
		p.Won += amount
		p.Winner = true
	}
}

func (h *RoundState) revealHoleCards(seat int) {
	for i := range h.Players[seat].HoleCards {
		h.Players[seat].HoleCards[i].FaceUp = true
	}
}

func (h *RoundState) finish() {
	for _, p := range h.Players {
		p.Bet = 0
	}
	h.Betting.ResetForNewStreet()
	h.Street = Complete
	h.CurrentPlayer = -1
}
