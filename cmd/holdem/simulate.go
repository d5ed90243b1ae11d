package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-coach/internal/bot"
	"github.com/lox/holdem-coach/internal/fileutil"
	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/internal/gameid"
	"github.com/lox/holdem-coach/internal/phh"
	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/internal/statistics"
	"github.com/lox/holdem-coach/internal/table"
)

// SimulateCmd plays a bot in the human seat against computer opponents.
type SimulateCmd struct {
	Hands      int    `default:"10000" help:"Number of hands to simulate"`
	Workers    int    `default:"4" help:"Hands played concurrently"`
	Hero       string `default:"intermediate" help:"Difficulty of the bot in the human seat"`
	Difficulty string `short:"d" help:"Opponent difficulty (defaults to the config)"`
	Opponents  int    `short:"o" help:"Number of opponents (defaults to the config)"`
	Stack      int    `default:"100" help:"Starting stack in big blinds for every hand"`
	Seed       int64  `help:"RNG seed (0 picks one from the clock)"`
	History    string `help:"Write every hand to this PHH file" type:"path"`
}

type simulation struct {
	hands     int
	workers   int
	hero      bot.Difficulty
	opponents bot.Difficulty
	players   int
	bigBlind  int
	stack     int
	seed      int64
	logger    *log.Logger
	sinks     []table.ResultSink
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Difficulty != "" {
		cfg.Game.Difficulty = c.Difficulty
	}
	if c.Opponents != 0 {
		cfg.Game.Opponents = c.Opponents
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	hero, err := bot.ParseDifficulty(c.Hero)
	if err != nil {
		return err
	}
	if c.Hands <= 0 || c.Workers <= 0 || c.Stack <= 0 {
		return fmt.Errorf("hands, workers and stack must be positive")
	}

	seed := c.Seed
	if seed == 0 {
		_, seed = randutil.NewOrTime(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := &simulation{
		hands:     c.Hands,
		workers:   c.Workers,
		hero:      hero,
		opponents: cfg.Difficulty(),
		players:   cfg.Game.Opponents + 1,
		bigBlind:  cfg.Game.BigBlind,
		stack:     c.Stack * cfg.Game.BigBlind,
		seed:      seed,
		logger:    logger,
	}

	var recorder *phh.Recorder
	if c.History != "" {
		recorder = phh.NewRecorder(quartz.NewReal(), "simulation")
		sim.sinks = append(sim.sinks, recorder)
	}

	fmt.Printf("Starting simulation: %d hands, %s hero vs %d %s opponents (seed: %d)\n",
		sim.hands, sim.hero, cfg.Game.Opponents, sim.opponents, seed)

	start := time.Now()
	stats, err := sim.run(ctx)
	if err != nil {
		return err
	}
	printResults(os.Stdout, stats, sim, time.Since(start))

	if recorder != nil {
		if err := fileutil.WriteAtomic(c.History, 0o644, recorder.Write); err != nil {
			return fmt.Errorf("writing hand history: %w", err)
		}
		logger.Info("Wrote hand history", "path", c.History, "hands", recorder.Len())
	}
	return nil
}

// run plays every hand, split across workers. Hand i is seeded with
// seed+i, so results do not depend on the number of workers.
func (s *simulation) run(ctx context.Context) (*statistics.Statistics, error) {
	var (
		mu    sync.Mutex
		total statistics.Statistics
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		g.Go(func() error {
			var stats statistics.Statistics
			for i := w; i < s.hands; i += s.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := s.playHand(ctx, s.seed+int64(i), &stats); err != nil {
					return fmt.Errorf("hand %d: %w", i, err)
				}
			}

			mu.Lock()
			total.Merge(&stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &total, nil
}

func (s *simulation) playHand(ctx context.Context, seed int64, stats *statistics.Statistics) error {
	rng := randutil.New(seed)
	hero := bot.New(s.hero, randutil.Derive(rng))

	sink := table.ResultSinkFunc(func(summary table.HandSummary) {
		stats.Add(statistics.FromSummary(summary, seed))
		for _, other := range s.sinks {
			other.HandComplete(summary)
		}
	})
	tbl := table.New(s.bigBlind, table.BotInput(hero),
		table.WithLogger(s.logger),
		table.WithDifficulty(s.opponents),
		table.WithHandIDs(gameid.NewGenerator(randutil.Derive(rng))),
		table.WithResultSink(sink),
	)

	seats := make([]game.SeatSpec, s.players)
	seats[0] = game.SeatSpec{Name: "Hero", Chips: s.stack, Human: true}
	for i := 1; i < s.players; i++ {
		seats[i] = game.SeatSpec{Name: fmt.Sprintf("Bot %d", i), Chips: s.stack}
	}

	_, err := tbl.PlayHand(ctx, rng, seats)
	return err
}

func printResults(out io.Writer, stats *statistics.Statistics, sim *simulation, duration time.Duration) {
	if stats.Hands == 0 {
		fmt.Fprintln(out, "No hands played.")
		return
	}
	mean := stats.Mean()
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(out, "\n=== FINAL RESULTS: %s hero vs %s opponents ===\n", sim.hero, sim.opponents)
	fmt.Fprintf(out, "Hands played: %d\n", stats.Hands)
	fmt.Fprintf(out, "Total time: %v (%.1f hands/sec)\n",
		duration.Round(time.Millisecond), float64(stats.Hands)/duration.Seconds())

	fmt.Fprintf(out, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(out, "Mean: %.4f bb/hand\n", mean)
	fmt.Fprintf(out, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(out, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(out, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(out, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(out, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	if err := stats.Validate(); err != nil {
		fmt.Fprintf(out, "LEDGER CHECK FAILED: %v\n", err)
	}

	fmt.Fprintf(out, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(out, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(wins)*100)
	}
	fmt.Fprintf(out, "Non-showdown: %.2f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
	fmt.Fprintf(out, "Showdown: %.2f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))

	fmt.Fprintf(out, "\n=== POT SIZE ANALYSIS ===\n")
	fmt.Fprintf(out, "Max pot observed: %d chips (%.1f bb)\n", stats.MaxPotChips, stats.MaxPotBB)
	fmt.Fprintf(out, "Big pots (>=%dbb): %d hands (%.1f%%), %.2f bb total\n",
		statistics.BigPotBB, stats.BigPots, float64(stats.BigPots)/float64(stats.Hands)*100, stats.BigPotsBB)

	fmt.Fprintf(out, "\n=== STREET ANALYSIS ===\n")
	for street := game.Preflop; street <= game.River; street++ {
		st := stats.StreetResults[street]
		if st.Hands > 0 {
			fmt.Fprintf(out, "Ended on %-8s %6d hands, %.3f bb/hand\n", street.String()+":", st.Hands, stats.StreetMean(street))
		}
	}
}
