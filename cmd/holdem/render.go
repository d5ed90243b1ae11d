package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/poker"
)

type styles struct {
	title   lipgloss.Style
	red     lipgloss.Style
	black   lipgloss.Style
	hidden  lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	actions lipgloss.Style
	box     lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		red:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		black:   r.NewStyle().Bold(true),
		hidden:  r.NewStyle().Foreground(lipgloss.Color("#626262")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
		actions: r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
	}
}

func (s styles) card(c poker.Card) string {
	if !c.Rank.Valid() {
		return s.hidden.Render("??")
	}
	if c.Suit.IsRed() {
		return s.red.Render(c.Pretty())
	}
	return s.black.Render(c.Pretty())
}

func (s styles) cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return s.hidden.Render("--")
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = s.card(c)
	}
	return strings.Join(out, " ")
}

// textRenderer prints the table whenever the human is due to act, every
// new message, and the showdown.
type textRenderer struct {
	w           io.Writer
	st          styles
	lastMessage string
}

func newTextRenderer(w io.Writer, st styles) *textRenderer {
	return &textRenderer{w: w, st: st}
}

func (r *textRenderer) Render(snap game.Snapshot) {
	if snap.Message != "" && snap.Message != r.lastMessage {
		fmt.Fprintln(r.w, r.st.info.Render("» "+snap.Message))
		r.lastMessage = snap.Message
	}

	switch {
	case snap.Street == game.Complete:
		r.lastMessage = ""
		fmt.Fprintln(r.w, r.st.box.Render(r.results(snap)))
	case heroSeat(snap) == snap.CurrentPlayer:
		fmt.Fprintln(r.w, r.st.box.Render(r.table(snap)))
	}
}

func heroSeat(snap game.Snapshot) int {
	for _, seat := range snap.Seats {
		if seat.Human {
			return seat.Seat
		}
	}
	return -1
}

func (r *textRenderer) table(snap game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  Board: %s  Pot: %d\n",
		strings.ToUpper(snap.Street.String()), r.st.cards(snap.Community), snap.Pot)

	for _, seat := range snap.Seats {
		marker := "  "
		if seat.Seat == snap.CurrentPlayer {
			marker = r.st.actions.Render("▶ ")
		}
		fmt.Fprintf(&b, "\n%s%-10s %6d  %s", marker, seat.Name, seat.Chips, r.seatStatus(seat))
		if seat.Seat == 0 {
			b.WriteString(r.st.info.Render("  (D)"))
		}
	}
	return b.String()
}

func (r *textRenderer) seatStatus(seat game.SeatView) string {
	switch {
	case !seat.Active:
		return r.st.info.Render("sitting out")
	case seat.Folded:
		return r.st.info.Render("folded")
	}

	status := r.st.cards(seat.HoleCards)
	if seat.Bet > 0 {
		status += fmt.Sprintf("  bet %d", seat.Bet)
	}
	if seat.AllIn {
		status += r.st.warning.Render("  all in")
	}
	return status
}

func (r *textRenderer) results(snap game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s", r.st.cards(snap.Community))

	for _, seat := range snap.Seats {
		if !seat.Active || seat.Folded {
			continue
		}
		line := fmt.Sprintf("%-10s %s", seat.Name, r.st.cards(seat.HoleCards))
		if seat.HandDescription != "" {
			line += "  " + seat.HandDescription
		}
		if seat.Winner {
			line = r.st.success.Render(fmt.Sprintf("%s  wins %d", line, seat.Won))
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
