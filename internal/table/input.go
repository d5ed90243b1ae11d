package table

import (
	"context"

	"github.com/lox/holdem-coach/internal/bot"
	"github.com/lox/holdem-coach/internal/game"
)

// BotInput lets a bot sit in the human seat, for simulations and demos.
func BotInput(b *bot.Bot) Input {
	return InputFunc(func(_ context.Context, snap game.Snapshot) (Choice, error) {
		dec := b.Decide(snap)
		return Choice{Action: dec.Action, Amount: dec.Amount}, nil
	})
}
