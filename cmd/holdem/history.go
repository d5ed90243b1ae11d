package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lox/holdem-coach/internal/phh"
)

// HistoryCmd summarises a hand history file written by play or simulate.
type HistoryCmd struct {
	File    string `arg:"" name:"file" help:"Path to a .phhs file" type:"existingfile"`
	Player  string `default:"${human_name}" help:"Player whose results are totalled"`
	Actions bool   `help:"Print every action"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	f, err := os.Open(filepath.Clean(c.File))
	if err != nil {
		return err
	}
	defer f.Close()

	hands, err := phh.DecodeAll(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}
	return c.summarise(os.Stdout, newStyles(os.Stdout, g.NoColor), hands)
}

func (c *HistoryCmd) summarise(out io.Writer, st styles, hands []phh.HandHistory) error {
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", c.File)
	}

	total, won := 0, 0
	for i := range hands {
		hand := &hands[i]
		net, seated := hand.Net()[c.Player]
		if seated {
			total += net
			if net > 0 {
				won++
			}
		}

		line := fmt.Sprintf("%3d  %-28s %d players", i+1, hand.HandID, len(hand.Players))
		switch {
		case !seated:
		case net > 0:
			line += "  " + st.success.Render(fmt.Sprintf("+%d", net))
		case net < 0:
			line += "  " + st.warning.Render(fmt.Sprintf("%d", net))
		default:
			line += "  0"
		}
		fmt.Fprintln(out, line)

		if c.Actions {
			for _, action := range hand.Actions {
				fmt.Fprintln(out, st.info.Render("       "+action))
			}
		}
	}

	fmt.Fprintf(out, "\n%d hands, %s won %d, net %+d\n", len(hands), c.Player, won, total)
	return nil
}

