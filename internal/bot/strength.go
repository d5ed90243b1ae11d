package bot

import (
	"math/rand/v2"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/poker"
)

// EstimateStrength returns a rough 0..1 rating of a hand, used only to pick
// actions. Showdowns are always settled by poker.Evaluate.
//
// The rating is perturbed by a uniform draw from rng scaled to the difficulty
// tier, then clamped. A nil rng disables the perturbation.
func EstimateStrength(hole, board []poker.Card, street game.Street, d Difficulty, rng *rand.Rand) float64 {
	var strength float64
	if street == game.Preflop || len(board) == 0 {
		strength = preflopStrength(hole)
	} else {
		strength = postflopStrength(hole, board)
	}
	if rng != nil {
		strength += (rng.Float64()*2 - 1) * d.Noise()
	}
	return clamp01(strength)
}

// pairStrength is indexed by rank ordinal, Two through Ace.
var pairStrength = [poker.NumRanks]float64{
	0.6, 0.6, 0.6, 0.6, 0.6, // 22-66
	0.7, 0.7, 0.7, // 77-99
	0.75, 0.8, 0.85, 0.9, 0.95, // TT-AA
}

// aceKickerStrength and kingKickerStrength are indexed by the other card's
// rank ordinal.
var aceKickerStrength = [poker.NumRanks]float64{
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.7, 0.75, 0.8, 0.85, // T J Q K
}

var kingKickerStrength = [poker.NumRanks]float64{
	0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4,
	0.65, 0.7, // J Q
}

const suitedBonus = 0.1

func preflopStrength(hole []poker.Card) float64 {
	if len(hole) < 2 {
		return 0
	}
	hi, lo := hole[0], hole[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}

	var strength float64
	switch {
	case hi.Rank == lo.Rank:
		strength = pairStrength[hi.Rank.Index()]
	case hi.Rank == poker.Ace:
		strength = aceKickerStrength[lo.Rank.Index()]
	case hi.Rank == poker.King:
		strength = kingKickerStrength[lo.Rank.Index()]
	default:
		switch hi.Rank - lo.Rank {
		case 1:
			strength = 0.5
		case 2:
			strength = 0.4
		default:
			strength = 0.3
		}
	}

	if hi.Suit == lo.Suit {
		strength += suitedBonus
	}
	return strength
}

// postflopStrength adds up made hands, draws and high cards over the hole
// cards and the board.
func postflopStrength(hole, board []poker.Card) float64 {
	var ranks [poker.NumRanks]int
	var suits [poker.NumSuits]int
	for _, cards := range [][]poker.Card{hole, board} {
		for _, c := range cards {
			if !c.Rank.Valid() || c.Suit >= poker.NumSuits {
				continue
			}
			ranks[c.Rank.Index()]++
			suits[c.Suit]++
		}
	}

	var pairs, trips, quads int
	for _, n := range ranks {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	var strength float64
	if ranks[poker.Ace.Index()] > 0 {
		strength += 0.1
	}
	if ranks[poker.King.Index()] > 0 {
		strength += 0.05
	}
	if ranks[poker.Queen.Index()] > 0 {
		strength += 0.03
	}

	switch {
	case pairs == 1:
		strength += 0.2
	case pairs >= 2:
		strength += 0.4
	}
	if trips >= 1 {
		strength += 0.5
		if pairs >= 1 {
			strength += 0.7
		}
	}
	if quads >= 1 {
		strength += 0.8
	}
	if maxOf(suits[:]) >= 5 {
		strength += 0.6
	}
	if longestWindow(ranks) >= 5 {
		strength += 0.6
	}
	return strength
}

// longestWindow returns the most populated ranks in any five-rank straight
// window, counting the ace low for the wheel.
func longestWindow(ranks [poker.NumRanks]int) int {
	// Ace, Two..Ace so the wheel is the first window.
	var line [poker.NumRanks + 1]bool
	line[0] = ranks[poker.Ace.Index()] > 0
	for i, n := range ranks {
		line[i+1] = n > 0
	}

	best := 0
	for start := 0; start+5 <= len(line); start++ {
		count := 0
		for _, present := range line[start : start+5] {
			if present {
				count++
			}
		}
		best = max(best, count)
	}
	return best
}

func maxOf(counts []int) int {
	best := 0
	for _, n := range counts {
		best = max(best, n)
	}
	return best
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
