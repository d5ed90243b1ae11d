package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the single-letter suit code used by ParseCard
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name
func (s Suit) Name() string {
	return [...]string{"hearts", "diamonds", "clubs", "spades"}[s%NumSuits]
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the ordinal value of a card, 2 through 14 with Ace high.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a standard deck
const NumRanks = 13

// Index returns the zero-based rank index (Two=0 .. Ace=12), suitable for
// fixed-size counter arrays.
func (r Rank) Index() int {
	return int(r) - int(Two)
}

// Valid reports whether r is a real rank.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single-character rank code ("T" for ten)
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string("23456789TJQKA"[r.Index()])
}

// Label returns the rank as printed on a card face ("10" for ten)
func (r Rank) Label() string {
	if r == Ten {
		return "10"
	}
	return r.String()
}

// Plural returns the rank's plural name, e.g. "Nines"
func (r Rank) Plural() string {
	if !r.Valid() {
		return "?"
	}
	return [...]string{
		"Twos", "Threes", "Fours", "Fives", "Sixes", "Sevens", "Eights",
		"Nines", "Tens", "Jacks", "Queens", "Kings", "Aces",
	}[r.Index()]
}

// Name returns the rank's singular name, e.g. "King"
func (r Rank) Name() string {
	if !r.Valid() {
		return "?"
	}
	return [...]string{
		"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace",
	}[r.Index()]
}

// Card is a playing card. Rank and suit never change once a card is drawn;
// FaceUp flips when the card is revealed.
type Card struct {
	Rank   Rank
	Suit   Suit
	FaceUp bool
}

// NewCard creates a face-down card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character card code, e.g. "As" or "Th"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pretty returns the card as printed on its face, e.g. "10♥"
func (c Card) Pretty() string {
	return c.Rank.Label() + c.Suit.Symbol()
}

// Same reports whether two cards have the same rank and suit, ignoring
// visibility.
func (c Card) Same(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

// Index returns a unique 0..51 index for the card's rank and suit.
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + c.Rank.Index()
}

// Revealed returns a face-up copy of the card
func (c Card) Revealed() Card {
	c.FaceUp = true
	return c
}

// ParseCard parses a card from a two-character string like "As", "Th", "2c".
// "10h" is accepted as an alternative spelling of ten.
func ParseCard(s string) (Card, error) {
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	var rank Rank
	switch s[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(s[0]-'0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch s[1] {
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
