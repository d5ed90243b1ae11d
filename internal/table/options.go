package table

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-coach/internal/bot"
	"github.com/lox/holdem-coach/internal/gameid"
)

// Option configures a Table during creation.
type Option func(*Table)

// WithClock sets the clock used to pace computer players. Tests pass a
// quartz mock.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithThinkDelay sets how long a computer player "thinks" before acting.
// Zero disables the delay.
func WithThinkDelay(d time.Duration) Option {
	return func(t *Table) {
		t.thinkDelay = d
	}
}

// WithLogger sets the logger; the table logs under the "table" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger.WithPrefix("table")
	}
}

// WithRenderer sets the renderer that receives a snapshot after every
// transition.
func WithRenderer(r Renderer) Option {
	return func(t *Table) {
		t.renderer = r
	}
}

// WithResultSink sets the sink that receives each completed hand.
func WithResultSink(sink ResultSink) Option {
	return func(t *Table) {
		t.sink = sink
	}
}

// WithHandIDs sets the generator for hand identifiers.
func WithHandIDs(ids *gameid.Generator) Option {
	return func(t *Table) {
		t.ids = ids
	}
}

// WithDifficulty sets the tier of every computer player.
func WithDifficulty(d bot.Difficulty) Option {
	return func(t *Table) {
		t.difficulty = d
	}
}

// WithMaxRetries sets how many times the human is asked again after an
// illegal choice before the default action is taken for them.
func WithMaxRetries(n int) Option {
	return func(t *Table) {
		t.maxRetries = n
	}
}
