package phh

import (
	"strings"

	"github.com/lox/holdem-coach/poker"
)

// FormatCards joins cards in PHH notation, e.g. "AhTd". Cards that were never
// dealt or are hidden are written as "??".
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		if !c.Rank.Valid() {
			b.WriteString("??")
			continue
		}
		b.WriteString(c.String())
	}
	return b.String()
}
