// Package session keeps score across consecutive hands at one table: the
// human's bankroll, each opponent's stack, and games played and won.
// Opponents who lose their whole stack sit out the hands that follow.
package session

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-coach/internal/game"
)

var (
	// ErrBankrupt is returned by CanContinue once the human has no chips.
	ErrBankrupt = errors.New("you are out of chips")
	// ErrTableCleared is returned by CanContinue once every opponent is out.
	ErrTableCleared = errors.New("every opponent is out of chips")
)

// HumanName is the display name of the human seat.
const HumanName = "You"

// Config describes a session.
type Config struct {
	Opponents     int
	StartingChips int
	BigBlind      int
}

func (c Config) validate() error {
	switch {
	case c.Opponents < 1 || c.Opponents > game.MaxSeats-1:
		return fmt.Errorf("%w: opponents must be between 1 and %d, got %d",
			game.ErrInvalidConfiguration, game.MaxSeats-1, c.Opponents)
	case c.StartingChips <= 0:
		return fmt.Errorf("%w: starting chips must be positive, got %d",
			game.ErrInvalidConfiguration, c.StartingChips)
	case c.BigBlind <= 0:
		return fmt.Errorf("%w: big blind must be positive, got %d",
			game.ErrInvalidConfiguration, c.BigBlind)
	}
	return nil
}

type seat struct {
	name   string
	human  bool
	chips  int
	busted bool
}

// Session tracks stacks and results across hands. The human is always
// seat 0. A Session is not safe for concurrent use.
type Session struct {
	cfg   Config
	seats []seat

	GamesPlayed int
	GamesWon    int
	BiggestWin  int // Largest single-hand gain
	BiggestLoss int // Largest single-hand loss, as a positive number
}

// New starts a session with every seat holding the starting stack.
func New(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg}
	s.Reset()
	return s, nil
}

// Reset restores the starting stacks and clears the statistics.
func (s *Session) Reset() {
	s.seats = make([]seat, s.cfg.Opponents+1)
	s.seats[0] = seat{name: HumanName, human: true, chips: s.cfg.StartingChips}
	for i := 1; i < len(s.seats); i++ {
		s.seats[i] = seat{name: fmt.Sprintf("Player %d", i), chips: s.cfg.StartingChips}
	}
	s.GamesPlayed = 0
	s.GamesWon = 0
	s.BiggestWin = 0
	s.BiggestLoss = 0
}

// NewTable refills every opponent's stack while keeping the human's
// bankroll and statistics.
func (s *Session) NewTable() {
	for i := 1; i < len(s.seats); i++ {
		s.seats[i].chips = s.cfg.StartingChips
		s.seats[i].busted = false
	}
}

// BigBlind returns the session's big blind.
func (s *Session) BigBlind() int { return s.cfg.BigBlind }

// Bankroll returns the human's current chips.
func (s *Session) Bankroll() int { return s.seats[0].chips }

// Stack returns the chips held by seat.
func (s *Session) Stack(seat int) int {
	if seat < 0 || seat >= len(s.seats) {
		return 0
	}
	return s.seats[seat].chips
}

// OpponentsRemaining returns how many opponents still have chips.
func (s *Session) OpponentsRemaining() int {
	n := 0
	for _, st := range s.seats[1:] {
		if !st.busted {
			n++
		}
	}
	return n
}

// WinRate returns the fraction of hands won, or 0 before any are played.
func (s *Session) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.GamesPlayed)
}

// CanContinue reports whether another hand can be dealt.
func (s *Session) CanContinue() error {
	if s.seats[0].chips <= 0 {
		return ErrBankrupt
	}
	if s.OpponentsRemaining() == 0 {
		return ErrTableCleared
	}
	return nil
}

// Seats returns the seat list for the next hand. Busted opponents are
// included but sit out, so seat numbers stay stable.
func (s *Session) Seats() []game.SeatSpec {
	specs := make([]game.SeatSpec, len(s.seats))
	for i, st := range s.seats {
		specs[i] = game.SeatSpec{
			Name:       st.name,
			Chips:      st.chips,
			Human:      st.human,
			SittingOut: st.busted || st.chips <= 0,
		}
	}
	return specs
}

// Record applies a completed hand: stacks are taken from the final state,
// opponents left with no chips are marked out and the human's result is
// counted.
func (s *Session) Record(final *game.RoundState) (game.Result, error) {
	result, ok := final.Result()
	if !ok {
		return game.Result{}, fmt.Errorf("%w: hand is not complete", game.ErrInvalidConfiguration)
	}
	if len(final.Players) != len(s.seats) {
		return game.Result{}, fmt.Errorf("%w: hand has %d seats, session has %d",
			game.ErrInvalidConfiguration, len(final.Players), len(s.seats))
	}

	for i, p := range final.Players {
		s.seats[i].chips = p.Chips
		if !s.seats[i].human && p.Chips == 0 {
			s.seats[i].busted = true
		}
	}

	s.GamesPlayed++
	if result.Won {
		s.GamesWon++
	}
	s.BiggestWin = max(s.BiggestWin, result.ChipsDelta)
	s.BiggestLoss = max(s.BiggestLoss, -result.ChipsDelta)
	return result, nil
}
