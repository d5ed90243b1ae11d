package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-coach/internal/config"
	"github.com/lox/holdem-coach/internal/fileutil"
	"github.com/lox/holdem-coach/internal/gameid"
	"github.com/lox/holdem-coach/internal/phh"
	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/internal/session"
	"github.com/lox/holdem-coach/internal/table"
)

// PlayCmd runs an interactive session against computer players.
type PlayCmd struct {
	Difficulty string        `short:"d" help:"Opponent difficulty: beginner, intermediate or advanced"`
	Opponents  int           `short:"o" help:"Number of computer opponents (1-9)"`
	BigBlind   int           `name:"big-blind" help:"Big blind in chips"`
	Chips      int           `help:"Starting chips for every player"`
	ThinkDelay time.Duration `name:"think-delay" help:"How long computer players think before acting" default:"-1ns"`
	Seed       int64         `help:"RNG seed (0 picks one from the clock)"`
	Hands      int           `help:"Stop after this many hands (0 plays until you quit)"`
	History    string        `help:"Write the session to this PHH file" type:"path"`
}

// apply overrides config values with any flags that were set.
func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Difficulty != "" {
		cfg.Game.Difficulty = c.Difficulty
	}
	if c.Opponents != 0 {
		cfg.Game.Opponents = c.Opponents
	}
	if c.BigBlind != 0 {
		cfg.Game.BigBlind = c.BigBlind
	}
	if c.Chips != 0 {
		cfg.Game.StartingChips = c.Chips
	}
	if c.ThinkDelay >= 0 {
		ms := int(c.ThinkDelay / time.Millisecond)
		cfg.Game.ThinkDelayMS = &ms
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := newStyles(os.Stdout, g.NoColor)
	input := &promptInput{lines: newLineReader(os.Stdin), out: os.Stdout, st: st}
	return c.play(ctx, cfg, logger, input, os.Stdout, st)
}

func (c *PlayCmd) play(ctx context.Context, cfg *config.Config, logger *log.Logger, input table.Input, out io.Writer, st styles) error {
	rng, seed := randutil.NewOrTime(cfg.Game.Seed)
	logger.Info("Starting session",
		"difficulty", cfg.Difficulty(),
		"opponents", cfg.Game.Opponents,
		"bigBlind", cfg.Game.BigBlind,
		"seed", seed)

	sess, err := session.New(session.Config{
		Opponents:     cfg.Game.Opponents,
		StartingChips: cfg.Game.StartingChips,
		BigBlind:      cfg.Game.BigBlind,
	})
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	recorder := phh.NewRecorder(clock, "holdem")
	tbl := table.New(cfg.Game.BigBlind, input,
		table.WithClock(clock),
		table.WithThinkDelay(cfg.ThinkDelay()),
		table.WithLogger(logger),
		table.WithDifficulty(cfg.Difficulty()),
		table.WithHandIDs(gameid.NewGenerator(nil)),
		table.WithRenderer(newTextRenderer(out, st)),
		table.WithResultSink(recorder),
	)

	fmt.Fprintln(out, st.title.Render("♠ ♥ Texas Hold'em ♦ ♣"))
	fmt.Fprintf(out, "%d %s opponents, blinds %d/%d, seed %d\n\n",
		cfg.Game.Opponents, cfg.Difficulty(), cfg.Game.BigBlind/2, cfg.Game.BigBlind, seed)

	for c.Hands == 0 || sess.GamesPlayed < c.Hands {
		if err := sess.CanContinue(); err != nil {
			if !errors.Is(err, session.ErrTableCleared) {
				fmt.Fprintln(out, st.warning.Render(err.Error()))
				break
			}
			fmt.Fprintln(out, st.success.Render("You cleared the table! New opponents sit down."))
			sess.NewTable()
		}

		summary, err := tbl.PlayHand(ctx, rng, sess.Seats())
		if errors.Is(err, table.ErrQuit) || ctx.Err() != nil {
			break
		}
		if err != nil {
			return err
		}

		result, err := sess.Record(summary.Final)
		if err != nil {
			return err
		}
		printHandResult(out, st, result.ChipsDelta, sess)
	}

	printSessionSummary(out, st, sess)
	return c.writeHistory(logger, recorder)
}

func (c *PlayCmd) writeHistory(logger *log.Logger, recorder *phh.Recorder) error {
	if c.History == "" || recorder.Len() == 0 {
		return nil
	}
	if err := recorder.Err(); err != nil {
		logger.Warn("Some hands could not be recorded", "error", err)
	}
	if err := fileutil.WriteAtomic(c.History, 0o644, recorder.Write); err != nil {
		return fmt.Errorf("writing hand history: %w", err)
	}
	logger.Info("Wrote hand history", "path", c.History, "hands", recorder.Len())
	return nil
}

func printHandResult(out io.Writer, st styles, delta int, sess *session.Session) {
	switch {
	case delta > 0:
		fmt.Fprintln(out, st.success.Render(fmt.Sprintf("You won %d chips.", delta)))
	case delta < 0:
		fmt.Fprintln(out, st.warning.Render(fmt.Sprintf("You lost %d chips.", -delta)))
	default:
		fmt.Fprintln(out, "You broke even.")
	}
	fmt.Fprintf(out, "Bankroll: %d\n\n", sess.Bankroll())
}

func printSessionSummary(out io.Writer, st styles, sess *session.Session) {
	fmt.Fprintln(out, st.title.Render("Session"))
	fmt.Fprintf(out, "Hands played: %d\n", sess.GamesPlayed)
	fmt.Fprintf(out, "Hands won:    %d (%.0f%%)\n", sess.GamesWon, sess.WinRate()*100)
	fmt.Fprintf(out, "Bankroll:     %d\n", sess.Bankroll())
	if sess.GamesPlayed > 0 {
		fmt.Fprintf(out, "Biggest win:  %d\n", sess.BiggestWin)
		fmt.Fprintf(out, "Biggest loss: %d\n", sess.BiggestLoss)
	}
}
