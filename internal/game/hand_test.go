package game

import (
	"errors"
	"testing"

	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandPostsBlindsHeadsUp(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)

	assert.Equal(t, 15, h.Pot.Amount)
	assert.Equal(t, 5, h.Players[1].Bet, "small blind")
	assert.Equal(t, 10, h.Players[0].Bet, "big blind")
	assert.Equal(t, 10, h.Betting.CurrentBet)
	assert.Equal(t, 0, h.Betting.LastRaiser)
	assert.Equal(t, 995, h.Players[1].Chips)
	assert.Equal(t, 990, h.Players[0].Chips)
	assert.Equal(t, 1, h.CurrentPlayer, "small blind acts first heads-up")
	assert.Equal(t, Preflop, h.Street)
	assert.Empty(t, h.Community)
}

func TestNewHandPostsBlindsThreeHanded(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)

	assert.Equal(t, 0, h.Players[0].Bet)
	assert.Equal(t, 5, h.Players[1].Bet)
	assert.Equal(t, 10, h.Players[2].Bet)
	assert.Equal(t, 0, h.CurrentPlayer, "action starts after the big blind")
}

func TestNewHandSkipsSittingOutSeats(t *testing.T) {
	t.Parallel()
	seats := tableOf(4, 1000)
	seats[1].SittingOut = true
	h := newTestHand(t, seats, 10)

	assert.Empty(t, h.Players[1].HoleCards)
	assert.False(t, h.Players[1].Active)
	assert.Equal(t, 5, h.Players[2].Bet)
	assert.Equal(t, 10, h.Players[3].Bet)
	assert.Equal(t, 0, h.CurrentPlayer)
}

func TestNewHandDealsHumanCardsFaceUp(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(4, 1000), 10)

	for _, p := range h.Players {
		require.Len(t, p.HoleCards, 2)
		for _, c := range p.HoleCards {
			assert.Equal(t, p.Human, c.FaceUp, "seat %d", p.Seat)
		}
	}
}

func TestNewHandDealsRoundRobin(t *testing.T) {
	t.Parallel()
	h := stackedHand(t, tableOf(3, 1000), 10, "As Ks Qs Ah Kh Qh")

	assert.True(t, h.Players[0].HoleCards[0].Same(poker.NewCard(poker.Ace, poker.Spades)))
	assert.True(t, h.Players[0].HoleCards[1].Same(poker.NewCard(poker.Ace, poker.Hearts)))
	assert.True(t, h.Players[1].HoleCards[0].Same(poker.NewCard(poker.King, poker.Spades)))
	assert.True(t, h.Players[2].HoleCards[1].Same(poker.NewCard(poker.Queen, poker.Hearts)))
}

func TestNewHandInvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seats    func() []SeatSpec
		bigBlind int
	}{
		{"zero big blind", func() []SeatSpec { return tableOf(2, 1000) }, 0},
		{"negative big blind", func() []SeatSpec { return tableOf(2, 1000) }, -10},
		{"one player", func() []SeatSpec { return tableOf(1, 1000) }, 10},
		{"zero stack", func() []SeatSpec {
			s := tableOf(3, 1000)
			s[2].Chips = 0
			return s
		}, 10},
		{"negative stack", func() []SeatSpec {
			s := tableOf(2, 1000)
			s[0].Chips = -1
			return s
		}, 10},
		{"no human", func() []SeatSpec {
			s := tableOf(2, 1000)
			s[0].Human = false
			return s
		}, 10},
		{"two humans", func() []SeatSpec {
			s := tableOf(3, 1000)
			s[1].Human = true
			return s
		}, 10},
		{"only one active", func() []SeatSpec {
			s := tableOf(3, 1000)
			s[1].SittingOut = true
			s[2].SittingOut = true
			return s
		}, 10},
		{"too many seats", func() []SeatSpec { return tableOf(MaxSeats+1, 1000) }, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewHand(randutil.New(1), tt.seats(), tt.bigBlind)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestLegalActionsFacingBlind(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)

	assert.Equal(t, []LegalAction{
		{Action: Fold},
		{Action: Call, Min: 5, Max: 5},
		{Action: Raise, Min: 11, Max: 1000},
		{Action: AllIn, Min: 1000, Max: 1000},
	}, h.LegalActions(1))

	assert.Empty(t, h.LegalActions(0), "only the current seat has actions")
	assert.Empty(t, h.LegalActions(7))
}

func TestLegalActionsBigBlindOption(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)
	h = act(t, h, Call, 0)

	require.Equal(t, 0, h.CurrentPlayer)
	assert.Equal(t, Preflop, h.Street, "big blind still has the option")
	assert.Equal(t, []LegalAction{
		{Action: Check},
		{Action: Bet, Min: 11, Max: 1000},
		{Action: AllIn, Min: 1000, Max: 1000},
	}, h.LegalActions(0))
}

func TestLegalActionsIdempotent(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(4, 1000), 10)

	first := LegalActions(h, h.CurrentPlayer)
	second := LegalActions(h, h.CurrentPlayer)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestAllInOverCurrentBet(t *testing.T) {
	t.Parallel()
	seats := tableOf(3, 1000)
	seats[0].Chips = 40
	h := newTestHand(t, seats, 10)
	require.Equal(t, 0, h.CurrentPlayer)

	h = act(t, h, AllIn, 0)

	p := h.Players[0]
	assert.Equal(t, 0, p.Chips)
	assert.Equal(t, 40, p.Bet)
	assert.True(t, p.AllIn)
	assert.Equal(t, 40, h.Betting.CurrentBet)
	assert.Equal(t, 0, h.Betting.LastRaiser)
	assert.Equal(t, 55, h.Pot.Amount)
	assert.Equal(t, 1, h.CurrentPlayer)
}

func TestAllInBelowCurrentBetIsNotARaise(t *testing.T) {
	t.Parallel()
	seats := tableOf(3, 1000)
	seats[0].Chips = 8
	h := newTestHand(t, seats, 10)

	h = act(t, h, AllIn, 0)

	assert.Equal(t, 10, h.Betting.CurrentBet)
	assert.Equal(t, 2, h.Betting.LastRaiser)
	assert.True(t, h.Players[0].AllIn)
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)

	h = act(t, h, Call, 0)   // seat 0
	h = act(t, h, Raise, 30) // seat 1 raises to 30
	require.Equal(t, 2, h.CurrentPlayer)
	h = act(t, h, Call, 0) // seat 2
	require.Equal(t, 0, h.CurrentPlayer, "seat 0 must respond to the raise")
	assert.Equal(t, Preflop, h.Street)
	h = act(t, h, Call, 0)

	assert.Equal(t, Flop, h.Street)
	assert.Len(t, h.Community, 3)
	assert.Equal(t, 90, h.Pot.Amount)
	assert.Equal(t, 1, h.CurrentPlayer, "first seat after the dealer acts first postflop")
	for _, p := range h.Players {
		assert.Zero(t, p.Bet)
	}
	assert.Zero(t, h.Betting.CurrentBet)
	assert.Equal(t, -1, h.Betting.LastRaiser)
}

func TestCallForLessGoesAllIn(t *testing.T) {
	t.Parallel()
	seats := tableOf(3, 1000)
	seats[2].Chips = 50
	h := newTestHand(t, seats, 10)

	h = act(t, h, Raise, 200) // seat 0
	h = act(t, h, Fold, 0)    // seat 1
	la, ok := Find(h.LegalActions(2), Call)
	require.True(t, ok)
	assert.Equal(t, 40, la.Min, "call is capped by the remaining stack")

	h = act(t, h, Call, 0)
	assert.True(t, h.Players[2].AllIn)
	assert.Equal(t, 0, h.Players[2].Chips)
}

func TestIllegalActionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)
	before := h.Clone()

	tests := []struct {
		name   string
		seat   int
		action Action
		amount int
		cause  error
	}{
		{"check facing a bet", 0, Check, 0, nil},
		{"bet facing a bet", 0, Bet, 50, nil},
		{"raise not above current bet", 0, Raise, 10, nil},
		{"raise beyond stack", 0, Raise, 1001, nil},
		{"out of turn", 1, Call, 0, ErrOutOfTurn},
		{"no such seat", 9, Fold, 0, ErrOutOfTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := ApplyAction(h, tt.seat, tt.action, tt.amount)
			require.Error(t, err)
			assert.Nil(t, next)
			assert.ErrorIs(t, err, ErrIllegalAction)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}

			var iae *IllegalActionError
			require.True(t, errors.As(err, &iae))
			assert.Equal(t, tt.seat, iae.Seat)
			assert.Equal(t, tt.action, iae.Action)
		})
	}

	assert.Equal(t, before, h)
}

func TestBetBelowBigBlindRejected(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)
	h = act(t, h, Call, 0)
	h = act(t, h, Check, 0)
	require.Equal(t, Flop, h.Street)

	_, err := ApplyAction(h, h.CurrentPlayer, Bet, 5)
	assert.ErrorIs(t, err, ErrIllegalAction)

	h = act(t, h, Bet, 10)
	assert.Equal(t, 10, h.Betting.CurrentBet)
}

func TestApplyActionDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)
	before := h.Clone()

	next := act(t, h, Raise, 40)

	assert.Equal(t, before, h)
	assert.NotSame(t, h.Players[0], next.Players[0])
	assert.Equal(t, 960, next.Players[0].Chips)
	assert.Equal(t, 1000, h.Players[0].Chips)
}

func TestFoldAwardsPotImmediately(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)

	h = act(t, h, Fold, 0)

	assert.True(t, h.IsComplete())
	assert.Equal(t, -1, h.CurrentPlayer)
	assert.Zero(t, h.Pot.Amount)
	assert.Equal(t, 1005, h.Players[0].Chips)
	assert.Equal(t, 995, h.Players[1].Chips)
	assert.True(t, h.Players[0].Winner)
	assert.Equal(t, 15, h.Players[0].Won)
	assert.Empty(t, h.Community, "no cards are dealt after a fold-out")

	result, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, Result{Won: true, ChipsDelta: 5}, result)

	_, err := ApplyAction(h, 0, Check, 0)
	assert.ErrorIs(t, err, ErrHandComplete)
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.Empty(t, h.LegalActions(0))
}

func TestHumanFoldReportsContribution(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)

	h = act(t, h, Raise, 30) // seat 0, the human
	h = act(t, h, Raise, 90) // seat 1
	h = act(t, h, Fold, 0)   // seat 2
	h = act(t, h, Fold, 0)   // seat 0

	result, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, Result{Won: false, ChipsDelta: -30}, result)
	assert.Equal(t, 1040, h.Players[1].Chips)
}

func TestResultBeforeCompletion(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)
	_, ok := h.Result()
	assert.False(t, ok)
}

func TestHeadsUpCheckDownSplitsEvenly(t *testing.T) {
	t.Parallel()
	// Both players play the board: A K Q J 9 high.
	h := stackedHand(t, tableOf(2, 1000), 10, "2c 2h 3d 3s Ah Kd Qs Jc 9h")

	h = act(t, h, Call, 0)
	h = act(t, h, Check, 0)
	require.Equal(t, Flop, h.Street)
	for !h.IsComplete() {
		h = act(t, h, Check, 0)
	}

	assert.Len(t, h.Community, 5)
	assert.Zero(t, h.Pot.Amount)
	assert.Equal(t, 1000, h.Players[0].Chips)
	assert.Equal(t, 1000, h.Players[1].Chips)
	assert.Equal(t, 10, h.Players[0].Won)
	assert.Equal(t, 10, h.Players[1].Won)
	assert.ElementsMatch(t, []int{0, 1}, h.Winners())
	require.Len(t, h.Showdown, 2)
	assert.Equal(t, "High Card, Ace", h.Players[0].HandDescription)
	assert.Contains(t, h.Message, "Split pot")

	result, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, Result{Won: true, ChipsDelta: 0}, result)
}

func TestSplitPotOddChipGoesLeftOfDealer(t *testing.T) {
	t.Parallel()
	// Seat 1 folds its small blind, seats 0 and 2 tie on the board.
	h := stackedHand(t, tableOf(3, 1000), 10, "2c 4h 2h 3d 5s 3s Ah Kd Qs Jc 9h")

	h = act(t, h, Call, 0)  // seat 0
	h = act(t, h, Fold, 0)  // seat 1
	h = act(t, h, Check, 0) // seat 2
	for !h.IsComplete() {
		h = act(t, h, Check, 0)
	}

	assert.Equal(t, 12, h.Players[0].Won)
	assert.Equal(t, 13, h.Players[2].Won, "seat 2 is nearer the dealer's left")
	assert.Equal(t, 1002, h.Players[0].Chips)
	assert.Equal(t, 995, h.Players[1].Chips)
	assert.Equal(t, 1003, h.Players[2].Chips)

	result, _ := h.Result()
	assert.Equal(t, Result{Won: true, ChipsDelta: 2}, result)
}

func TestShowdownBestHandWins(t *testing.T) {
	t.Parallel()
	// Seat 0 makes a flush with the board, seat 1 a pair of kings.
	h := stackedHand(t, tableOf(2, 1000), 10, "Ah Kc 7h Kd 2h 9h Jh 4c 3s")

	for !h.IsComplete() {
		action, amount := passive(h)
		h = act(t, h, action, amount)
	}

	assert.Equal(t, []int{0}, h.Winners())
	assert.Equal(t, 1010, h.Players[0].Chips)
	assert.Equal(t, "Flush, Ace high", h.Players[0].HandDescription)
	assert.Equal(t, "One Pair, Kings", h.Players[1].HandDescription)
	for _, c := range h.Players[1].HoleCards {
		assert.True(t, c.FaceUp, "showdown reveals every live hand")
	}
	for _, c := range h.Community {
		assert.True(t, c.FaceUp)
	}
}

func TestShowdownKeepsFoldedCardsHidden(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)

	h = act(t, h, Call, 0) // seat 0
	h = act(t, h, Fold, 0) // seat 1
	for !h.IsComplete() {
		action, amount := passive(h)
		h = act(t, h, action, amount)
	}

	for _, c := range h.Players[1].HoleCards {
		assert.False(t, c.FaceUp)
	}
	assert.Empty(t, h.Players[1].HandDescription)
}

func TestAllInRunsOutTheBoard(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)

	h = act(t, h, AllIn, 0) // seat 1
	require.Equal(t, 0, h.CurrentPlayer)
	h = act(t, h, Call, 0)

	assert.True(t, h.IsComplete(), "nobody can act, the board is run out")
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 2000, totalChips(h))
	assert.NotEmpty(t, h.Winners())
}

func TestShortAllInRunsOutWhenOnlyOneCanAct(t *testing.T) {
	t.Parallel()
	seats := tableOf(2, 1000)
	seats[1].Chips = 100
	h := newTestHand(t, seats, 10)

	h = act(t, h, AllIn, 0) // seat 1 shoves 100
	h = act(t, h, Call, 0)  // seat 0 calls 90 and still has chips behind

	assert.False(t, h.Players[0].AllIn)
	assert.True(t, h.IsComplete())
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 1100, totalChips(h))
}

func TestBlindAllInStartsRunOut(t *testing.T) {
	t.Parallel()
	seats := tableOf(2, 1000)
	seats[1].Chips = 3
	h := newTestHand(t, seats, 10)

	assert.True(t, h.Players[1].AllIn)
	assert.True(t, h.IsComplete(), "the big blind has nothing to call and nobody to bet against")
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 1003, totalChips(h))
}

func TestNoEligibleSeatForcesProgression(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(3, 1000), 10)

	h = act(t, h, AllIn, 0)
	h = act(t, h, AllIn, 0)
	h = act(t, h, AllIn, 0)

	assert.True(t, h.IsComplete())
	assert.Equal(t, -1, h.CurrentPlayer)
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 3000, totalChips(h))
}

func TestDeckExhaustedAtDeal(t *testing.T) {
	t.Parallel()
	deck := poker.NewOrderedDeck()
	_, err := deck.Deal(50)
	require.NoError(t, err)

	_, err = NewHand(nil, tableOf(2, 1000), 10, WithDeck(deck))
	assert.ErrorIs(t, err, poker.ErrDeckExhausted)
}

func TestDeckExhaustedMidHandLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	deck := poker.NewOrderedDeck()
	_, err := deck.Deal(48)
	require.NoError(t, err)

	h, err := NewHand(nil, tableOf(2, 1000), 10, WithDeck(deck))
	require.NoError(t, err)
	h = act(t, h, Call, 0)
	before := h.Clone()

	next, err := ApplyAction(h, 0, Check, 0)
	assert.ErrorIs(t, err, poker.ErrDeckExhausted)
	assert.Nil(t, next)
	assert.Equal(t, before, h)
}

func TestNoDuplicateCardsDealt(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 50; seed++ {
		h, err := NewHand(randutil.New(seed), tableOf(MaxSeats, 1000), 10)
		require.NoError(t, err)
		for !h.IsComplete() {
			action, amount := passive(h)
			h = act(t, h, action, amount)
		}

		seen := make(map[int]bool)
		cards := append([]poker.Card(nil), h.Community...)
		for _, p := range h.Players {
			cards = append(cards, p.HoleCards...)
		}
		require.Len(t, cards, 2*MaxSeats+5)
		for _, c := range cards {
			require.False(t, seen[c.Index()], "seed %d dealt %s twice", seed, c)
			seen[c.Index()] = true
		}
		assert.Equal(t, poker.DeckSize-len(cards), h.CardsRemaining())
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)

	for game := 0; game < 200; game++ {
		n := 2 + rng.IntN(MaxSeats-1)
		seats := tableOf(n, 0)
		start := 0
		for i := range seats {
			seats[i].Chips = 20 + rng.IntN(500)
			start += seats[i].Chips
		}
		h, err := NewHand(randutil.Derive(rng), seats, 10)
		require.NoError(t, err)

		for steps := 0; !h.IsComplete(); steps++ {
			require.Less(t, steps, 500, "hand did not terminate")

			legal := h.LegalActions(h.CurrentPlayer)
			require.NotEmpty(t, legal, "seat %d on %s has no actions", h.CurrentPlayer, h.Street)
			require.Equal(t, legal, h.LegalActions(h.CurrentPlayer))

			la := legal[rng.IntN(len(legal))]
			amount := la.Min
			if la.Max > la.Min {
				amount += rng.IntN(la.Max - la.Min + 1)
			}
			h = act(t, h, la.Action, amount)

			committed := 0
			for _, p := range h.Players {
				committed += p.TotalBet
				require.GreaterOrEqual(t, p.Chips, 0)
				if !h.IsComplete() {
					require.LessOrEqual(t, p.Bet, h.Betting.CurrentBet)
				}
			}
			require.GreaterOrEqual(t, h.Pot.Amount, 0)
			if !h.IsComplete() {
				require.Equal(t, committed, h.Pot.Amount, "pot must equal chips committed")
			}
			require.Equal(t, start, totalChips(h), "chips are conserved")
		}

		assert.Zero(t, h.Pot.Amount)
		assert.NotEmpty(t, h.Winners())
	}
}

func TestHistoryRecordsActions(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, tableOf(2, 1000), 10)

	h = act(t, h, Raise, 30)
	h = act(t, h, Call, 0)

	assert.Equal(t, []ActionRecord{
		{Seat: 1, Street: Preflop, Action: Raise, Amount: 25, Total: 30, Raised: true},
		{Seat: 0, Street: Preflop, Action: Call, Amount: 20, Total: 30},
	}, h.History)
	assert.Equal(t, Flop, h.Street)
}
