package game

import (
	"github.com/lox/holdem-coach/poker"
)

// HandOption configures a RoundState during creation.
type HandOption func(*handConfig)

// handConfig holds optional configuration for creating a hand.
type handConfig struct {
	deck *poker.Deck // If provided, used instead of shuffling a fresh deck
}

// SeatSpec describes one seat at the start of a hand.
type SeatSpec struct {
	Name       string
	Chips      int
	Human      bool
	SittingOut bool // eliminated players keep their seat but are not dealt in
}

// WithDeck sets a specific pre-arranged deck, overriding the shuffle. The
// deck is cloned, so the caller's copy is left untouched.
//
// Example usage:
//
//	deck, _ := poker.NewStackedDeck(poker.MustParseCards("As Kd Ah Kc")...)
//	s, _ := NewHand(rng, seats, 10, WithDeck(deck))
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck.Clone()
	}
}
