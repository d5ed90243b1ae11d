// Package practice implements the hand-ranking quiz: two named hands are
// shown and the player picks the stronger one.
package practice

import "github.com/lox/holdem-coach/poker"

// Ranking is a hand category with a description and an example hand.
type Ranking struct {
	Category    poker.Category
	Description string
	Example     []poker.Card
}

var rankings = []Ranking{
	{poker.RoyalFlush, "A, K, Q, J, 10, all of the same suit", poker.MustParseCards("Ah Kh Qh Jh Th")},
	{poker.StraightFlush, "Five cards in sequence, all of the same suit", poker.MustParseCards("8c 7c 6c 5c 4c")},
	{poker.FourOfAKind, "Four cards of the same rank", poker.MustParseCards("Qs Qh Qd Qc 7s")},
	{poker.FullHouse, "Three of a kind plus a pair", poker.MustParseCards("Th Td Ts 9c 9h")},
	{poker.Flush, "Five cards of the same suit, not in sequence", poker.MustParseCards("Kd Jd 8d 4d 2d")},
	{poker.Straight, "Five cards in sequence, not all of the same suit", poker.MustParseCards("Qs Jh Td 9c 8h")},
	{poker.ThreeOfAKind, "Three cards of the same rank", poker.MustParseCards("8s 8h 8d Kc 4h")},
	{poker.TwoPair, "Two different pairs", poker.MustParseCards("As Ah Jd Jc 7h")},
	{poker.OnePair, "Two cards of the same rank", poker.MustParseCards("Ts Th Ad 7c 2h")},
	{poker.HighCard, "When no other hand is made", poker.MustParseCards("As Jh 8d 7c 3h")},
}

// Rankings returns the ten categories, strongest first.
func Rankings() []Ranking {
	out := make([]Ranking, len(rankings))
	copy(out, rankings)
	return out
}

// RankingFor returns the ranking for a category.
func RankingFor(c poker.Category) (Ranking, bool) {
	for _, r := range rankings {
		if r.Category == c {
			return r, true
		}
	}
	return Ranking{}, false
}
