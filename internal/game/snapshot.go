package game

import (
	"slices"

	"github.com/lox/holdem-coach/poker"
)

// SeatView is one player's state as seen from a viewing seat.
type SeatView struct {
	Seat            int
	Name            string
	Human           bool
	Chips           int
	Bet             int
	Folded          bool
	AllIn           bool
	Active          bool
	Winner          bool
	Won             int
	HandDescription string
	// HoleCards holds only the cards the viewer is allowed to see; hidden
	// cards are left as the zero Card with FaceUp false.
	HoleCards []poker.Card
}

// Snapshot is a read-only view of a hand after a transition, built for
// rendering and for the decision policy.
type Snapshot struct {
	Street        Street
	Community     []poker.Card
	Pot           int
	CurrentBet    int
	BigBlind      int
	CurrentPlayer int
	Message       string
	Seats         []SeatView
	Legal         []LegalAction // For CurrentPlayer
	Showdown      []ShowdownResult
}

// Snapshot returns the hand as seen by viewer. The viewer's own cards are
// always visible; other players' cards only once they have been revealed.
// Pass -1 for a spectator who only sees revealed cards.
func (h *RoundState) Snapshot(viewer int) Snapshot {
	snap := Snapshot{
		Street:        h.Street,
		Community:     slices.Clone(h.Community),
		Pot:           h.Pot.Amount,
		CurrentBet:    h.Betting.CurrentBet,
		BigBlind:      h.BigBlind,
		CurrentPlayer: h.CurrentPlayer,
		Message:       h.Message,
		Seats:         make([]SeatView, len(h.Players)),
		Legal:         h.LegalActions(h.CurrentPlayer),
		Showdown:      slices.Clone(h.Showdown),
	}

	for i, p := range h.Players {
		view := SeatView{
			Seat:            p.Seat,
			Name:            p.Name,
			Human:           p.Human,
			Chips:           p.Chips,
			Bet:             p.Bet,
			Folded:          p.Folded,
			AllIn:           p.AllIn,
			Active:          p.Active,
			Winner:          p.Winner,
			Won:             p.Won,
			HandDescription: p.HandDescription,
			HoleCards:       make([]poker.Card, len(p.HoleCards)),
		}
		for j, c := range p.HoleCards {
			if c.FaceUp || i == viewer {
				view.HoleCards[j] = c
			}
		}
		snap.Seats[i] = view
	}
	return snap
}

// ToCall returns the chips seat needs to put in to call the current bet.
func (s Snapshot) ToCall(seat int) int {
	if seat < 0 || seat >= len(s.Seats) {
		return 0
	}
	return max(0, min(s.CurrentBet-s.Seats[seat].Bet, s.Seats[seat].Chips))
}

// ActiveSeats returns the number of players dealt into the hand.
func (s Snapshot) ActiveSeats() int {
	n := 0
	for _, seat := range s.Seats {
		if seat.Active {
			n++
		}
	}
	return n
}
