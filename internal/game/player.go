package game

import (
	"slices"

	"github.com/lox/holdem-coach/poker"
)

// Player represents a seat in a hand
type Player struct {
	Seat            int
	Name            string
	Human           bool
	Chips           int
	HoleCards       []poker.Card
	Bet             int // Chips committed on the current street
	TotalBet        int // Chips committed over the whole hand
	Folded          bool
	AllIn           bool
	Active          bool // Seated and dealt in; eliminated players are inactive
	Winner          bool
	Won             int // Chips awarded at the end of the hand
	HandDescription string
}

// CanAct returns true if the player can still take betting actions
func (p *Player) CanAct() bool {
	return p.Active && !p.Folded && !p.AllIn
}

// InHand returns true if the player still contests the pot
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

// Stack returns the chips behind plus the chips already bet this street,
// the largest total bet the player can make.
func (p *Player) Stack() int {
	return p.Chips + p.Bet
}

// commit moves chips from the stack into the current bet.
func (p *Player) commit(amount int) int {
	amount = min(amount, p.Chips)
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}

func (p *Player) clone() *Player {
	cp := *p
	cp.HoleCards = slices.Clone(p.HoleCards)
	return &cp
}
