package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = NumSuits * NumRanks

// ErrDeckExhausted is returned when a deal would run past the last card.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a standard 52-card deck consumed from the top without
// replacement.
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
}

// NewOrderedDeck returns an unshuffled deck, suits in order hearts, diamonds,
// clubs, spades and ranks ascending within each suit.
func NewOrderedDeck() *Deck {
	d := &Deck{}
	i := 0
	for suit := range Suit(NumSuits) {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// NewDeck creates a new deck shuffled with the given RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := NewOrderedDeck()
	d.Shuffle(rng)
	return d
}

// NewStackedDeck creates a deck whose top cards are the given cards in order,
// followed by the remaining cards in their natural order. Used to set up
// deterministic deals.
func NewStackedDeck(top ...Card) (*Deck, error) {
	d := &Deck{}
	var seen [DeckSize]bool
	for i, c := range top {
		if !c.Rank.Valid() || c.Suit >= NumSuits {
			return nil, fmt.Errorf("invalid card %v at position %d", c, i)
		}
		if seen[c.Index()] {
			return nil, fmt.Errorf("duplicate card %s in stacked deck", c)
		}
		seen[c.Index()] = true
		d.cards[i] = NewCard(c.Rank, c.Suit)
	}
	i := len(top)
	for _, c := range NewOrderedDeck().cards {
		if !seen[c.Index()] {
			d.cards[i] = c
			i++
		}
	}
	return d, nil
}

// Shuffle resets the deck position and shuffles all 52 cards using
// Fisher-Yates.
func (d *Deck) Shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck. It fails without consuming
// anything if fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.CardsRemaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Clone returns an independent copy of the deck, including its position.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}
