// Package table runs hands of Hold'em between one human and computer
// players. It sequences turns over the pure game engine: it asks the human's
// Input or a bot for each action, paces the bots with a thinking delay,
// publishes snapshots to a Renderer and reports results to a ResultSink.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-coach/internal/bot"
	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/internal/gameid"
	"github.com/lox/holdem-coach/internal/randutil"
)

// DefaultMaxRetries is how many illegal choices the human may make in a row
// before the default action is taken.
const DefaultMaxRetries = 3

// Table plays hands at a fixed big blind.
type Table struct {
	bigBlind   int
	input      Input
	difficulty bot.Difficulty
	clock      quartz.Clock
	thinkDelay time.Duration
	logger     *log.Logger
	renderer   Renderer
	sink       ResultSink
	ids        *gameid.Generator
	maxRetries int
}

// New creates a table. input supplies the human seat's actions.
func New(bigBlind int, input Input, opts ...Option) *Table {
	t := &Table{
		bigBlind:   bigBlind,
		input:      input,
		clock:      quartz.NewReal(),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		renderer:   discardRenderer{},
		sink:       discardSink{},
		ids:        gameid.NewGenerator(nil),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PlayHand deals one hand to seats and plays it to completion. The rng
// shuffles the deck and seeds the bots, so a fixed seed replays the hand
// given the same human choices.
//
// The hand is abandoned, with no result reported, if ctx is cancelled or
// the input returns ErrQuit.
func (t *Table) PlayHand(ctx context.Context, rng *rand.Rand, seats []game.SeatSpec) (HandSummary, error) {
	id := t.ids.Generate()
	logger := t.logger.With("hand", id)

	state, err := game.NewHand(rng, seats, t.bigBlind)
	if err != nil {
		return HandSummary{}, fmt.Errorf("starting hand: %w", err)
	}

	bots := make(map[int]*bot.Bot)
	for _, p := range state.Players {
		if p.Active && !p.Human {
			bots[p.Seat] = bot.New(t.difficulty, randutil.Derive(rng))
		}
	}

	logger.Info("Starting hand", "players", len(bots)+1, "bigBlind", t.bigBlind, "difficulty", t.difficulty)
	t.renderer.Render(state.Snapshot(state.Hero))

	coerced := 0
	for !state.IsComplete() {
		if err := ctx.Err(); err != nil {
			logger.Info("Hand abandoned", "street", state.Street, "error", err)
			return HandSummary{}, err
		}

		var next *game.RoundState
		var defaulted bool
		seat := state.CurrentPlayer
		if state.Players[seat].Human {
			next, defaulted, err = t.humanTurn(ctx, logger, state)
		} else {
			next, defaulted, err = t.botTurn(ctx, logger, state, bots[seat])
		}
		if err != nil {
			if errors.Is(err, ErrQuit) || ctx.Err() != nil {
				logger.Info("Hand abandoned", "street", state.Street, "error", err)
			}
			return HandSummary{}, err
		}
		if defaulted {
			coerced++
		}

		last := next.History[len(next.History)-1]
		logger.Debug("Action applied",
			"seat", last.Seat,
			"player", next.Players[last.Seat].Name,
			"street", last.Street,
			"action", last.Action,
			"amount", last.Amount,
			"pot", next.Pot.Amount)

		state = next
		t.renderer.Render(state.Snapshot(state.Hero))
	}

	result, _ := state.Result()
	summary := HandSummary{
		ID:       id,
		Result:   result,
		Final:    state,
		Showdown: len(state.Showdown) > 0,
		Coerced:  coerced,
	}
	for _, p := range state.Players {
		summary.Pot += p.TotalBet
	}

	logger.Info("Hand complete",
		"won", result.Won,
		"chipsDelta", result.ChipsDelta,
		"pot", summary.Pot,
		"showdown", summary.Showdown,
		"message", state.Message)
	t.sink.HandComplete(summary)
	return summary, nil
}

func (t *Table) humanTurn(ctx context.Context, logger *log.Logger, state *game.RoundState) (*game.RoundState, bool, error) {
	seat := state.CurrentPlayer
	snap := state.Snapshot(seat)

	for attempt := 0; ; attempt++ {
		choice, err := t.input.Choose(ctx, snap)
		if err != nil {
			if errors.Is(err, ErrQuit) || ctx.Err() != nil {
				return nil, false, err
			}
			logger.Warn("Input failed, taking the default action", "seat", seat, "error", err)
			return t.applyDefault(state, seat)
		}

		next, err := game.ApplyAction(state, seat, choice.Action, choice.Amount)
		if err == nil {
			return next, false, nil
		}
		if !errors.Is(err, game.ErrIllegalAction) {
			return nil, false, err
		}

		logger.Debug("Rejected choice", "seat", seat, "action", choice.Action, "amount", choice.Amount, "error", err)
		if r, ok := t.input.(Rejecter); ok {
			r.Rejected(choice, err)
		}
		if attempt >= t.maxRetries {
			logger.Warn("Too many illegal choices, taking the default action", "seat", seat)
			return t.applyDefault(state, seat)
		}
	}
}

func (t *Table) botTurn(ctx context.Context, logger *log.Logger, state *game.RoundState, b *bot.Bot) (*game.RoundState, bool, error) {
	seat := state.CurrentPlayer
	if err := t.think(ctx); err != nil {
		return nil, false, err
	}
	if b == nil {
		logger.Warn("No bot for seat, taking the default action", "seat", seat)
		return t.applyDefault(state, seat)
	}

	dec := b.Decide(state.Snapshot(seat))
	logger.Debug("Bot decision",
		"seat", seat,
		"decision", dec,
		"strength", fmt.Sprintf("%.2f", dec.Strength),
		"reasoning", dec.Reasoning)

	next, err := game.ApplyAction(state, seat, dec.Action, dec.Amount)
	if errors.Is(err, game.ErrIllegalAction) {
		logger.Warn("Bot chose an illegal action, taking the default action", "seat", seat, "error", err)
		return t.applyDefault(state, seat)
	}
	return next, false, err
}

// applyDefault checks, or folds when facing a bet.
func (t *Table) applyDefault(state *game.RoundState, seat int) (*game.RoundState, bool, error) {
	action := game.DefaultAction(state.LegalActions(seat))
	next, err := game.ApplyAction(state, seat, action, 0)
	return next, true, err
}

// think waits out the computer player's thinking delay.
func (t *Table) think(ctx context.Context) error {
	if t.thinkDelay <= 0 {
		return nil
	}
	timer := t.clock.NewTimer(t.thinkDelay, "table", "think")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
