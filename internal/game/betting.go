package game

import (
	"fmt"
	"strings"
)

// Street represents the stage of the hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Street) String() string {
	if s < Preflop || s > Complete {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "complete"}[s]
}

// boardSize is the number of community cards visible on each street.
func (s Street) boardSize() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseAction resolves an action name as typed by a player.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "x", "k":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "allin", "all-in", "all", "a":
		return AllIn, nil
	default:
		return Fold, fmt.Errorf("unknown action %q", s)
	}
}

// LegalAction is one entry of the legal-action set for a seat.
//
// For Bet and Raise, Min and Max bound the amount argument, which is the
// seat's total bet for the street after the action. For Call they hold the
// chips the call costs and for AllIn the seat's total bet after shoving;
// ApplyAction ignores the amount for every action but Bet and Raise.
type LegalAction struct {
	Action Action
	Min    int
	Max    int
}

func (la LegalAction) String() string {
	switch la.Action {
	case Bet, Raise:
		return fmt.Sprintf("%s %d-%d", la.Action, la.Min, la.Max)
	case Call, AllIn:
		return fmt.Sprintf("%s %d", la.Action, la.Min)
	default:
		return la.Action.String()
	}
}

// Find returns the entry for action, if present.
func Find(actions []LegalAction, action Action) (LegalAction, bool) {
	for _, la := range actions {
		if la.Action == action {
			return la, true
		}
	}
	return LegalAction{}, false
}

// Allows reports whether action with amount is in the set.
func Allows(actions []LegalAction, action Action, amount int) bool {
	la, ok := Find(actions, action)
	if !ok {
		return false
	}
	if action == Bet || action == Raise {
		return amount >= la.Min && amount <= la.Max
	}
	return true
}

// DefaultAction is the action taken for a seat that cannot or did not
// decide: check when nothing is owed, otherwise fold.
func DefaultAction(actions []LegalAction) Action {
	if _, ok := Find(actions, Check); ok {
		return Check
	}
	return Fold
}

// BettingRound encapsulates the per-street betting state
type BettingRound struct {
	CurrentBet int
	LastRaiser int // -1 when nobody has bet or raised this street
	BigBlind   int
	Acted      []bool // Seats that acted since the last bet or raise
}

// NewBettingRound creates a new betting round
func NewBettingRound(numPlayers, bigBlind int) BettingRound {
	return BettingRound{
		LastRaiser: -1,
		BigBlind:   bigBlind,
		Acted:      make([]bool, numPlayers),
	}
}

func (br BettingRound) clone() BettingRound {
	br.Acted = append([]bool(nil), br.Acted...)
	return br
}

// ResetForNewStreet clears the betting state between streets
func (br *BettingRound) ResetForNewStreet() {
	br.CurrentBet = 0
	br.LastRaiser = -1
	clear(br.Acted)
}

// markAggression records a bet or raise: everyone else must act again.
func (br *BettingRound) markAggression(seat, amount int) {
	br.CurrentBet = amount
	br.LastRaiser = seat
	clear(br.Acted)
	br.Acted[seat] = true
}

// ValidActions returns the legal actions for a player that is due to act.
func (br BettingRound) ValidActions(p *Player) []LegalAction {
	if !p.CanAct() {
		return nil
	}

	stack := p.Stack()
	toCall := br.CurrentBet - p.Bet
	var actions []LegalAction

	if toCall <= 0 {
		actions = append(actions, LegalAction{Action: Check})
		if minBet := max(br.BigBlind, br.CurrentBet+1); stack >= minBet {
			actions = append(actions, LegalAction{Action: Bet, Min: minBet, Max: stack})
		}
	} else {
		actions = append(actions,
			LegalAction{Action: Fold},
			LegalAction{Action: Call, Min: min(toCall, p.Chips), Max: min(toCall, p.Chips)},
		)
		if minRaise := br.CurrentBet + 1; stack >= minRaise {
			actions = append(actions, LegalAction{Action: Raise, Min: minRaise, Max: stack})
		}
	}

	if p.Chips > 0 {
		actions = append(actions, LegalAction{Action: AllIn, Min: stack, Max: stack})
	}
	return actions
}

// IsBettingComplete checks if the street's betting is finished: every player
// who can act has matched the current bet and acted since the last raise.
// A lone player who can act and has nothing to call has nobody to bet
// against, so the street is also complete.
func (br BettingRound) IsBettingComplete(players []*Player) bool {
	canAct := 0
	for _, p := range players {
		if p.CanAct() {
			canAct++
		}
	}

	for i, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != br.CurrentBet {
			return false
		}
		if canAct > 1 && !br.Acted[i] {
			return false
		}
	}
	return true
}
