package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-coach/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// EncodeAll writes hands as numbered sections of a .phhs file.
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatAction converts a recorded action to a PHH action string for the
// player at index (0 is the small blind). Bets, raises and raising all-ins
// are written with the player's street total.
func FormatAction(index int, rec game.ActionRecord) (string, bool) {
	player := fmt.Sprintf("p%d", index+1)
	switch rec.Action {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise:
		if rec.Total <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, rec.Total), true
	case game.AllIn:
		if rec.Raised {
			return fmt.Sprintf("%s cbr %d", player, rec.Total), true
		}
		return player + " cc", true
	default:
		return fmt.Sprintf("# %s %s %d", player, rec.Action, rec.Total), true
	}
}
