package table

import (
	"context"
	"errors"

	"github.com/lox/holdem-coach/internal/game"
)

// ErrQuit is returned by an Input when the player leaves the table. The hand
// in progress is abandoned and no result is reported.
var ErrQuit = errors.New("player quit")

// Choice is an action picked by a human player.
type Choice struct {
	Action game.Action
	Amount int
}

// Input supplies the human player's actions.
type Input interface {
	// Choose is called with the hand as the human sees it. The snapshot's
	// Legal set lists what may be chosen.
	Choose(ctx context.Context, snap game.Snapshot) (Choice, error)
}

// InputFunc adapts a function to Input
type InputFunc func(ctx context.Context, snap game.Snapshot) (Choice, error)

func (f InputFunc) Choose(ctx context.Context, snap game.Snapshot) (Choice, error) {
	return f(ctx, snap)
}

// Rejecter is implemented by inputs that want to hear why a choice was
// refused before being asked again.
type Rejecter interface {
	Rejected(choice Choice, err error)
}

// Renderer receives the hand as the human sees it after every transition.
type Renderer interface {
	Render(snap game.Snapshot)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(snap game.Snapshot)

func (f RendererFunc) Render(snap game.Snapshot) { f(snap) }

// ResultSink receives exactly one summary per completed hand.
type ResultSink interface {
	HandComplete(summary HandSummary)
}

// ResultSinkFunc adapts a function to ResultSink
type ResultSinkFunc func(summary HandSummary)

func (f ResultSinkFunc) HandComplete(summary HandSummary) { f(summary) }

// HandSummary describes a finished hand.
type HandSummary struct {
	ID       string
	Result   game.Result // From the human player's point of view
	Final    *game.RoundState
	Pot      int  // Total chips committed over the hand
	Showdown bool // The hand was decided by comparing hands
	Coerced  int  // Actions replaced by the default after a failure
}

type discardRenderer struct{}

func (discardRenderer) Render(game.Snapshot) {}

type discardSink struct{}

func (discardSink) HandComplete(HandSummary) {}
