// Package statistics aggregates simulated hands into per-hand win rates
// measured in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/internal/table"
)

// BigPotBB is the size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult is the outcome of a single hand for the hero
type HandResult struct {
	NetBB          float64     // Net big blinds won or lost
	Seed           int64       // RNG seed for the hand, for replay
	WentToShowdown bool        // Decided by comparing hands
	FinalPotSize   int         // Chips committed by every player
	BigBlind       int         // Big blind in chips
	StreetReached  game.Street // Last street dealt
}

// FromSummary converts a completed table hand into a HandResult.
func FromSummary(summary table.HandSummary, seed int64) HandResult {
	final := summary.Final
	res := HandResult{
		Seed:           seed,
		WentToShowdown: summary.Showdown,
		FinalPotSize:   summary.Pot,
		BigBlind:       final.BigBlind,
		StreetReached:  streetForBoard(len(final.Community)),
	}
	if final.BigBlind > 0 {
		res.NetBB = float64(summary.Result.ChipsDelta) / float64(final.BigBlind)
	}
	return res
}

func streetForBoard(cards int) game.Street {
	switch {
	case cards >= 5:
		return game.River
	case cards == 4:
		return game.Turn
	case cards == 3:
		return game.Flop
	default:
		return game.Preflop
	}
}

// StreetStats tracks results for hands that ended on one street
type StreetStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics accumulates hand results. It is not safe for concurrent use;
// concurrent simulations keep one each and Merge them.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance
	Values []float64 // Every result, for median and percentiles

	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without a showdown
	ShowdownBB      float64 // Net BB from showdowns, wins and losses
	NonShowdownBB   float64 // Net BB from hands decided by folds
	AllBB           float64

	StreetResults [game.River + 1]StreetStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int     // Pots of at least BigPotBB
	BigPotsBB   float64 // Net BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumBB2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if st := result.StreetReached; st >= game.Preflop && st <= game.River {
		s.StreetResults[st].Hands++
		s.StreetResults[st].SumBB += netBB
		s.StreetResults[st].SumBB2 += netBB * netBB
	}

	potBB := 0.0
	if result.BigBlind > 0 {
		potBB = float64(result.FinalPotSize) / float64(result.BigBlind)
	}
	if result.FinalPotSize > s.MaxPotChips {
		s.MaxPotChips = result.FinalPotSize
		s.MaxPotBB = potBB
	}
	if potBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i := range s.StreetResults {
		s.StreetResults[i].Hands += other.StreetResults[i].Hands
		s.StreetResults[i].SumBB += other.StreetResults[i].SumBB
		s.StreetResults[i].SumBB2 += other.StreetResults[i].SumBB2
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// StreetMean returns the mean result of hands that ended on street
func (s *Statistics) StreetMean(street game.Street) float64 {
	if street < game.Preflop || street > game.River {
		return 0
	}
	st := s.StreetResults[street]
	if st.Hands == 0 {
		return 0
	}
	return st.SumBB / float64(st.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the statistics are internally consistent.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	streetHands := 0
	for _, st := range s.StreetResults {
		streetHands += st.Hands
	}
	if streetHands != s.Hands {
		return fmt.Errorf("street hands total (%d) does not match total hands (%d)",
			streetHands, s.Hands)
	}
	return nil
}
