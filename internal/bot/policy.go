package bot

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lox/holdem-coach/internal/game"
)

// Decision is an action chosen for the acting seat, with the reasoning
// behind it for logs and the coaching display.
type Decision struct {
	Action    game.Action
	Amount    int // Total street bet for Bet and Raise, 0 otherwise
	Strength  float64
	Reasoning string
}

func (d Decision) String() string {
	switch d.Action {
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s %d", d.Action, d.Amount)
	default:
		return d.Action.String()
	}
}

// Bot picks actions for a computer-controlled seat.
type Bot struct {
	difficulty Difficulty
	rng        *rand.Rand
}

// New returns a bot playing at difficulty d. The rng drives both the
// strength perturbation and bluffing; nil makes the bot deterministic.
func New(d Difficulty, rng *rand.Rand) *Bot {
	return &Bot{difficulty: d, rng: rng}
}

// Difficulty returns the bot's tier
func (b *Bot) Difficulty() Difficulty {
	return b.difficulty
}

// Decide chooses an action for the seat due to act in snap, which should be
// the snapshot as seen by that seat. The result is always in snap.Legal
// unless the set is empty, in which case it is a fold.
func (b *Bot) Decide(snap game.Snapshot) Decision {
	seat := snap.CurrentPlayer
	if seat < 0 || seat >= len(snap.Seats) || len(snap.Legal) == 0 {
		return Decision{Action: game.Fold, Reasoning: "no legal actions"}
	}

	me := snap.Seats[seat]
	strength := EstimateStrength(me.HoleCards, snap.Community, snap.Street, b.difficulty, b.rng)
	return Choose(NewSituation(snap, strength), b.difficulty, b.rng)
}

// Decide is a one-shot form of Bot.Decide for the seat due to act in state.
func Decide(state *game.RoundState, d Difficulty, rng *rand.Rand) Decision {
	return New(d, rng).Decide(state.Snapshot(state.CurrentPlayer))
}

// Choose applies the tier's policy to a situation and returns a legal
// decision. Anything the policy cannot express legally degrades to a check,
// or a fold when facing a bet.
func Choose(sit Situation, d Difficulty, rng *rand.Rand) Decision {
	if math.IsNaN(sit.Strength) || len(sit.Legal) == 0 {
		return safeDefault(sit, "unable to evaluate the hand")
	}

	var dec Decision
	switch d {
	case Beginner:
		dec = beginner(sit)
	case Intermediate:
		dec = intermediate(sit, rng)
	default:
		dec = advanced(sit, rng)
	}
	dec.Strength = sit.Strength
	return legalize(sit, dec)
}

// beginner reacts to raw strength only.
func beginner(s Situation) Decision {
	if !s.FacingBet() {
		if s.Strength > 0.7 {
			return bet(potFraction(s, 0.5), "strong hand, betting")
		}
		return check("nothing to call")
	}
	if s.CallCommitsStack() {
		if s.Strength > 0.6 {
			return allIn("calling off the stack with a good hand")
		}
		return fold("not risking the stack")
	}
	switch {
	case s.Strength > 0.7:
		return raise(s.CurrentBet*2, "strong hand, raising")
	case s.Strength >= 0.4:
		return call("decent hand")
	default:
		return fold("weak hand")
	}
}

// intermediate weighs pot odds, takes a small late-position bonus and
// mixes in occasional bluffs.
func intermediate(s Situation, rng *rand.Rand) Decision {
	adj := s.Strength
	if s.LatePosition() {
		adj += 0.05
	}

	if !s.FacingBet() {
		switch {
		case adj > 0.6:
			return bet(potFraction(s, 0.5), "value bet")
		case adj < 0.3 && chance(rng, 0.1):
			return bet(potFraction(s, 0.5), "bluff")
		default:
			return check("pot control")
		}
	}

	if s.CallCommitsStack() {
		if adj > 0.6 {
			return allIn("committed with a strong hand")
		}
		return fold("call would cost the whole stack")
	}
	switch {
	case adj > 0.8:
		return raise(s.CurrentBet*2, "raising for value")
	case s.ToCall*2 > s.Chips && adj < 0.6:
		return fold("too expensive for a marginal hand")
	case adj > s.PotOdds+0.1:
		return call(fmt.Sprintf("strength %.2f beats pot odds %.2f", adj, s.PotOdds))
	case chance(rng, 0.05):
		return raise(s.CurrentBet*2, "bluff raise")
	default:
		return fold(fmt.Sprintf("pot odds %.2f not good enough", s.PotOdds))
	}
}

// streetSizing is the pot fraction the advanced tier bets on each street.
var streetSizing = map[game.Street]float64{
	game.Preflop: 0.5,
	game.Flop:    0.6,
	game.Turn:    0.75,
	game.River:   0.9,
}

// advanced sizes by pot and street, bluffs more in late position and
// adjusts its all-in threshold for the price.
func advanced(s Situation, rng *rand.Rand) Decision {
	adj := s.Strength + 0.08*s.Position
	frac, ok := streetSizing[s.Street]
	if !ok {
		frac = 0.5
	}
	bluffBelow := 0.3
	if s.LatePosition() {
		bluffBelow = 0.45
	}

	if !s.FacingBet() {
		switch {
		case adj > 0.85:
			return bet(potFraction(s, frac*1.5), "building the pot with a big hand")
		case adj > 0.55:
			return bet(potFraction(s, frac), "value bet")
		case adj < bluffBelow && chance(rng, 0.12):
			return bet(potFraction(s, frac), "positional bluff")
		default:
			return check("checking behind")
		}
	}

	allInAbove := 0.5 + s.PotOdds*0.5
	if s.CallCommitsStack() {
		if adj > allInAbove {
			return allIn(fmt.Sprintf("strength %.2f clears the all-in threshold %.2f", adj, allInAbove))
		}
		return fold("price too high to call off")
	}
	switch {
	case adj > 0.9 && s.Chips <= s.Pot:
		return allIn("short relative to the pot, shoving")
	case adj > 0.75:
		return raise(s.CurrentBet*2+potFraction(s, frac*0.5), "raising for value")
	case adj > s.PotOdds+0.05:
		return call(fmt.Sprintf("strength %.2f beats pot odds %.2f", adj, s.PotOdds))
	case s.LatePosition() && adj < bluffBelow && chance(rng, 0.08):
		return raise(s.CurrentBet*2, "late position bluff raise")
	default:
		return fold("not worth the price")
	}
}

// legalize clamps bet sizes into the legal range and swaps any action
// outside the legal set for the nearest one inside it.
func legalize(s Situation, d Decision) Decision {
	switch d.Action {
	case game.Bet, game.Raise:
		la, ok := game.Find(s.Legal, d.Action)
		if !ok {
			// Not enough chips to bet or raise the minimum.
			if _, ok := game.Find(s.Legal, game.Call); ok {
				d.Action, d.Amount = game.Call, 0
			} else {
				d.Action, d.Amount = game.Check, 0
			}
			break
		}
		d.Amount = clampBet(d.Amount, s.BigBlind, s.Stack, la)
	case game.Call:
		if !s.FacingBet() {
			d.Action = game.Check
		}
		d.Amount = 0
	default:
		d.Amount = 0
	}

	if !game.Allows(s.Legal, d.Action, d.Amount) {
		return safeDefault(s, d.Reasoning)
	}
	return d
}

// clampBet keeps a size within [bigBlind, stack] and the legal range.
func clampBet(amount, bigBlind, stack int, la game.LegalAction) int {
	amount = max(amount, bigBlind, la.Min)
	amount = min(amount, stack, la.Max)
	return max(amount, la.Min)
}

func safeDefault(s Situation, reasoning string) Decision {
	return Decision{Action: game.DefaultAction(s.Legal), Strength: s.Strength, Reasoning: reasoning}
}

// potFraction floors a fraction of the pot, never below the big blind.
func potFraction(s Situation, frac float64) int {
	return max(int(math.Floor(float64(s.Pot)*frac)), s.BigBlind)
}

func chance(rng *rand.Rand, p float64) bool {
	return rng != nil && rng.Float64() < p
}

func bet(amount int, why string) Decision {
	return Decision{Action: game.Bet, Amount: amount, Reasoning: why}
}

func raise(amount int, why string) Decision {
	return Decision{Action: game.Raise, Amount: amount, Reasoning: why}
}

func call(why string) Decision  { return Decision{Action: game.Call, Reasoning: why} }
func check(why string) Decision { return Decision{Action: game.Check, Reasoning: why} }
func fold(why string) Decision  { return Decision{Action: game.Fold, Reasoning: why} }
func allIn(why string) Decision { return Decision{Action: game.AllIn, Reasoning: why} }
