package poker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Category enumerates the ten hand categories from weakest to strongest.
// InvalidHand is the sentinel category of a failed evaluation.
type Category uint8

const (
	InvalidHand Category = iota
	HighCard
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	"Invalid Hand",
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
	"Royal Flush",
}

// String returns the category's display name, e.g. "Full House".
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// Categories returns the ten real categories in ascending strength.
func Categories() []Category {
	return []Category{
		HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
	}
}

// ParseCategory resolves a display name (case-insensitive) to a Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(c.String(), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return InvalidHand, fmt.Errorf("unknown hand category %q", name)
}

var (
	// ErrInsufficientCards is returned when fewer than five cards are evaluated.
	ErrInsufficientCards = errors.New("insufficient cards")
	// ErrTooManyCards is returned when more than seven cards are evaluated.
	ErrTooManyCards = errors.New("too many cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Score orders hands: a higher score always wins and equal scores tie.
//
// The category occupies the bits above tiebreakBits, so no hand of a lower
// category can outscore a higher one. The tiebreak packs up to five rank
// values, one per nibble, most significant first.
type Score uint32

const tiebreakBits = 20

// MaxScore is the score of a royal flush, the best possible hand.
const MaxScore = Score(uint32(RoyalFlush)<<tiebreakBits | uint32(Ace))

// Category returns the category encoded in the score.
func (s Score) Category() Category {
	return Category(s >> tiebreakBits)
}

// HandResult is the outcome of evaluating a set of cards.
type HandResult struct {
	Category    Category
	Score       Score
	Description string
	Best        []Card // the five cards forming the hand, strongest first
}

// Valid reports whether the result came from a successful evaluation.
func (h HandResult) Valid() bool {
	return h.Category != InvalidHand
}

// Compare returns 1 if h beats other, -1 if other beats h and 0 on a tie.
func (h HandResult) Compare(other HandResult) int {
	switch {
	case h.Score > other.Score:
		return 1
	case h.Score < other.Score:
		return -1
	default:
		return 0
	}
}

var invalidResult = HandResult{Category: InvalidHand, Description: InvalidHand.String()}

// Evaluate ranks 5 to 7 cards by the best 5-card subset. On error the
// sentinel invalid result is returned alongside it.
func Evaluate(cards []Card) (HandResult, error) {
	switch {
	case len(cards) < 5:
		return invalidResult, fmt.Errorf("%w: need at least 5, got %d", ErrInsufficientCards, len(cards))
	case len(cards) > 7:
		return invalidResult, fmt.Errorf("%w: at most 7, got %d", ErrTooManyCards, len(cards))
	}

	var seen [DeckSize]bool
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit >= NumSuits {
			return invalidResult, fmt.Errorf("invalid card %v", c)
		}
		if seen[c.Index()] {
			return invalidResult, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.Index()] = true
	}

	n := len(cards)
	best := invalidResult
	var five [5]Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if r := evaluateFive(five); r.Score > best.Score {
							best = r
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is Evaluate for callers that have already validated their
// input; it panics on error.
func MustEvaluate(cards []Card) HandResult {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return r
}

// rankGroup is a rank and how many of the five cards share it.
type rankGroup struct {
	rank  Rank
	count int
}

// evaluateFive scores exactly five distinct cards, testing categories from
// strongest to weakest.
func evaluateFive(five [5]Card) HandResult {
	sorted := five[:]
	slices.SortFunc(sorted, func(a, b Card) int { return int(b.Rank) - int(a.Rank) })

	var rankCounts [NumRanks]int
	var suitCounts [NumSuits]int
	for _, c := range sorted {
		rankCounts[c.Rank.Index()]++
		suitCounts[c.Suit]++
	}

	// Groups ordered by count, then rank, both descending.
	groups := make([]rankGroup, 0, 5)
	for i := NumRanks - 1; i >= 0; i-- {
		if rankCounts[i] > 0 {
			groups = append(groups, rankGroup{rank: Rank(i) + Two, count: rankCounts[i]})
		}
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int { return b.count - a.count })

	flush := slices.Contains(suitCounts[:], 5)
	straightHigh := straightHighCard(sorted, len(groups))
	best := append([]Card(nil), sorted...)

	result := func(cat Category, desc string, ranks ...Rank) HandResult {
		return HandResult{Category: cat, Score: score(cat, ranks...), Description: desc, Best: best}
	}

	switch {
	case flush && straightHigh == Ace:
		return result(RoyalFlush, "Royal Flush", Ace)
	case flush && straightHigh > 0:
		if straightHigh == Five {
			best = wheelOrder(best)
		}
		return result(StraightFlush, fmt.Sprintf("Straight Flush, %s high", straightHigh.Name()), straightHigh)
	case groups[0].count == 4:
		return result(FourOfAKind, fmt.Sprintf("Four of a Kind, %s", groups[0].rank.Plural()),
			groups[0].rank, groups[1].rank)
	case groups[0].count == 3 && groups[1].count == 2:
		return result(FullHouse, fmt.Sprintf("Full House, %s over %s", groups[0].rank.Plural(), groups[1].rank.Plural()),
			groups[0].rank, groups[1].rank)
	case flush:
		return result(Flush, fmt.Sprintf("Flush, %s high", sorted[0].Rank.Name()), cardRanks(sorted)...)
	case straightHigh > 0:
		if straightHigh == Five {
			best = wheelOrder(best)
		}
		return result(Straight, fmt.Sprintf("Straight, %s high", straightHigh.Name()), straightHigh)
	case groups[0].count == 3:
		return result(ThreeOfAKind, fmt.Sprintf("Three of a Kind, %s", groups[0].rank.Plural()),
			groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].count == 2 && groups[1].count == 2:
		return result(TwoPair, fmt.Sprintf("Two Pair, %s and %s", groups[0].rank.Plural(), groups[1].rank.Plural()),
			groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].count == 2:
		return result(OnePair, fmt.Sprintf("One Pair, %s", groups[0].rank.Plural()),
			groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank)
	default:
		return result(HighCard, fmt.Sprintf("High Card, %s", sorted[0].Rank.Name()), cardRanks(sorted)...)
	}
}

// straightHighCard returns the high card of a straight formed by the five
// rank-descending cards, Five for the wheel, or 0 when there is none.
func straightHighCard(sorted []Card, distinct int) Rank {
	if distinct != 5 {
		return 0
	}
	if sorted[0].Rank-sorted[4].Rank == 4 {
		return sorted[0].Rank
	}
	if sorted[0].Rank == Ace && sorted[1].Rank == Five {
		return Five
	}
	return 0
}

// wheelOrder moves the ace of A-5-4-3-2 to the end so the hand reads 5 high.
func wheelOrder(cards []Card) []Card {
	return append(cards[1:], cards[0])
}

func cardRanks(cards []Card) []Rank {
	ranks := make([]Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}

func score(cat Category, ranks ...Rank) Score {
	var tiebreak uint32
	for _, r := range ranks {
		tiebreak = tiebreak<<4 | uint32(r)
	}
	return Score(uint32(cat)<<tiebreakBits | tiebreak)
}
