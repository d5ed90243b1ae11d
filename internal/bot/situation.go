package bot

import (
	"github.com/lox/holdem-coach/internal/game"
)

// Situation captures the inputs of one decision, as seen by the acting seat.
type Situation struct {
	Seat       int
	Street     game.Street
	Strength   float64
	PotOdds    float64 // Call cost over the pot after calling; 0 with nothing to call
	Position   float64 // 0 first to act after the dealer, 1 on the button
	Pot        int
	CurrentBet int
	ToCall     int
	BigBlind   int
	Chips      int // Behind, not counting the current bet
	Stack      int // Chips plus the current bet
	Legal      []game.LegalAction
}

// NewSituation reads a snapshot from the acting seat's point of view.
func NewSituation(snap game.Snapshot, strength float64) Situation {
	seat := snap.CurrentPlayer
	sit := Situation{
		Seat:       seat,
		Street:     snap.Street,
		Strength:   strength,
		Pot:        snap.Pot,
		CurrentBet: snap.CurrentBet,
		BigBlind:   snap.BigBlind,
		Legal:      snap.Legal,
	}
	if seat < 0 || seat >= len(snap.Seats) {
		return sit
	}

	me := snap.Seats[seat]
	sit.Chips = me.Chips
	sit.Stack = me.Chips + me.Bet
	sit.ToCall = snap.ToCall(seat)
	if sit.ToCall > 0 {
		sit.PotOdds = float64(sit.ToCall) / float64(snap.Pot+sit.ToCall)
	}
	sit.Position = position(seat, len(snap.Seats))
	return sit
}

// position maps a seat to 0..1 by how late it acts after the flop.
func position(seat, numSeats int) float64 {
	if numSeats < 2 {
		return 0
	}
	return float64((seat-1+numSeats)%numSeats) / float64(numSeats-1)
}

// FacingBet reports whether the seat has chips to put in to continue.
func (s Situation) FacingBet() bool {
	return s.ToCall > 0
}

// LatePosition reports whether the seat acts in the last third of the table.
func (s Situation) LatePosition() bool {
	return s.Position >= 2.0/3.0
}

// CallCommitsStack reports whether calling would put the seat all-in.
func (s Situation) CallCommitsStack() bool {
	return s.ToCall >= s.Chips
}
