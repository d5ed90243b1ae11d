package phh

import (
	"fmt"
	"time"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/poker"
)

// Variant is the PHH code for no-limit Texas Hold'em.
const Variant = "NT"

// FromHand builds the history of a completed hand. Players are listed from
// the small blind round to the dealer; seats sitting out are left out.
func FromHand(id, tableName string, final *game.RoundState, at time.Time) (*HandHistory, error) {
	if !final.IsComplete() {
		return nil, fmt.Errorf("phh: hand %s is not complete", id)
	}

	order := positionOrder(final.Players)
	n := len(order)
	h := &HandHistory{
		Variant:           Variant,
		Table:             tableName,
		SeatCount:         len(final.Players),
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            final.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Actions:           make([]string, 0, n+len(final.History)+4),
		Players:           make([]string, n),
		HandID:            id,
		Timestamp:         at,
	}
	h.BlindsOrStraddles[0] = final.SmallBlind
	h.BlindsOrStraddles[1] = final.BigBlind

	index := make(map[int]int, n)
	for pos, seat := range order {
		p := final.Players[seat]
		index[seat] = pos
		h.Seats[pos] = seat + 1
		h.StartingStacks[pos] = p.Chips - p.Won + p.TotalBet
		h.FinishingStacks[pos] = p.Chips
		h.Winnings[pos] = p.Won
		h.Players[pos] = p.Name
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", pos+1, FormatCards(p.HoleCards)))
	}

	dealt := 0
	for _, rec := range final.History {
		dealt = h.dealBoard(final.Community, dealt, boardSize(rec.Street))
		if action, ok := FormatAction(index[rec.Seat], rec); ok {
			h.Actions = append(h.Actions, action)
		}
	}
	h.dealBoard(final.Community, dealt, len(final.Community))

	for _, sr := range final.Showdown {
		p := final.Players[sr.Seat]
		h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", index[sr.Seat]+1, FormatCards(p.HoleCards)))
	}

	populateTimeFields(h)
	return h, nil
}

// positionOrder lists dealt-in seats starting after the dealer (seat 0),
// so the dealer comes last.
func positionOrder(players []*game.Player) []int {
	var order []int
	for i := 1; i <= len(players); i++ {
		seat := i % len(players)
		if players[seat].Active {
			order = append(order, seat)
		}
	}
	return order
}

func boardSize(street game.Street) int {
	switch street {
	case game.Preflop:
		return 0
	case game.Flop:
		return 3
	case game.Turn:
		return 4
	default:
		return 5
	}
}

// dealBoard appends a "d db" action per street for board cards from dealt
// up to upTo and returns the new count.
func (h *HandHistory) dealBoard(board []poker.Card, dealt, upTo int) int {
	upTo = min(upTo, len(board))
	for dealt < upTo {
		next := dealt + 1
		if dealt < 3 {
			next = 3
		}
		h.Actions = append(h.Actions, "d db "+FormatCards(board[dealt:next]))
		dealt = next
	}
	return dealt
}

func populateTimeFields(hist *HandHistory) {
	t := hist.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	hist.Time = utc.Format("15:04:05")
	hist.TimeZone = "UTC"
	hist.Day = utc.Day()
	hist.Month = int(utc.Month())
	hist.Year = utc.Year()
}
