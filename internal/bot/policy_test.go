package bot

import (
	"fmt"
	"math"
	"testing"

	"github.com/lox/holdem-coach/internal/game"
	"github.com/lox/holdem-coach/internal/randutil"
	"github.com/lox/holdem-coach/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noBet is the legal set of a seat with 990 behind and nothing to call.
var noBet = []game.LegalAction{
	{Action: game.Check},
	{Action: game.Bet, Min: 10, Max: 990},
	{Action: game.AllIn, Min: 990, Max: 990},
}

// facingBet is the legal set of a seat with 990 behind facing a bet of 40.
var facingBet = []game.LegalAction{
	{Action: game.Fold},
	{Action: game.Call, Min: 40, Max: 40},
	{Action: game.Raise, Min: 41, Max: 990},
	{Action: game.AllIn, Min: 990, Max: 990},
}

func situation(strength float64, toCall int, legal []game.LegalAction) Situation {
	return Situation{
		Seat:       1,
		Street:     game.Flop,
		Strength:   strength,
		Pot:        100,
		CurrentBet: toCall,
		ToCall:     toCall,
		PotOdds:    float64(toCall) / float64(100+toCall),
		BigBlind:   10,
		Chips:      990,
		Stack:      990,
		Legal:      legal,
	}
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Difficulty{
		"beginner":     Beginner,
		"Easy":         Beginner,
		"intermediate": Intermediate,
		"medium":       Intermediate,
		" advanced ":   Advanced,
		"hard":         Advanced,
	} {
		got, err := ParseDifficulty(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDifficulty("grandmaster")
	assert.Error(t, err)

	var d Difficulty
	require.NoError(t, d.UnmarshalText([]byte("advanced")))
	assert.Equal(t, Advanced, d)
	assert.Equal(t, "intermediate", Intermediate.String())
}

func TestNoiseNarrowsWithDifficulty(t *testing.T) {
	t.Parallel()
	assert.Greater(t, Beginner.Noise(), Intermediate.Noise())
	assert.Greater(t, Intermediate.Noise(), Advanced.Noise())
}

func TestBeginnerThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strength float64
		toCall   int
		legal    []game.LegalAction
		want     game.Action
		amount   int
	}{
		{"strong bets half pot", 0.8, 0, noBet, game.Bet, 50},
		{"medium checks", 0.5, 0, noBet, game.Check, 0},
		{"weak checks", 0.1, 0, noBet, game.Check, 0},
		{"strong raises", 0.8, 40, facingBet, game.Raise, 80},
		{"medium calls", 0.5, 40, facingBet, game.Call, 0},
		{"weak folds", 0.3, 40, facingBet, game.Fold, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Choose(situation(tt.strength, tt.toCall, tt.legal), Beginner, nil)
			assert.Equal(t, tt.want, d.Action)
			assert.Equal(t, tt.amount, d.Amount)
			assert.NotEmpty(t, d.Reasoning)
		})
	}
}

func TestIntermediateUsesPotOdds(t *testing.T) {
	t.Parallel()

	// Calling 40 into 100: pot odds 40/140.
	cheap := situation(0.45, 40, facingBet)
	assert.Equal(t, game.Call, Choose(cheap, Intermediate, nil).Action)

	// Calling 300 into 100: pot odds 0.75.
	legal := []game.LegalAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 300, Max: 300},
		{Action: game.Raise, Min: 301, Max: 990},
		{Action: game.AllIn, Min: 990, Max: 990},
	}
	pricey := situation(0.45, 300, legal)
	assert.Equal(t, game.Fold, Choose(pricey, Intermediate, nil).Action)
}

func TestIntermediateLatePositionBonus(t *testing.T) {
	t.Parallel()
	early := situation(0.58, 0, noBet)
	late := early
	late.Position = 1

	assert.Equal(t, game.Check, Choose(early, Intermediate, nil).Action)
	assert.Equal(t, game.Bet, Choose(late, Intermediate, nil).Action)
}

func TestAdvancedSizesByStreet(t *testing.T) {
	t.Parallel()
	flop := situation(0.6, 0, noBet)
	river := flop
	river.Street = game.River

	assert.Equal(t, Decision{Action: game.Bet, Amount: 60, Strength: 0.6, Reasoning: "value bet"},
		Choose(flop, Advanced, nil))
	assert.Equal(t, 90, Choose(river, Advanced, nil).Amount)
}

func TestAllInDecisionWhenCallCommitsStack(t *testing.T) {
	t.Parallel()
	legal := []game.LegalAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 50, Max: 50},
		{Action: game.AllIn, Min: 50, Max: 50},
	}

	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		strong := situation(0.95, 200, legal)
		strong.Chips, strong.Stack = 50, 50
		assert.Equal(t, game.AllIn, Choose(strong, d, nil).Action, "%s", d)

		weak := strong
		weak.Strength = 0.2
		assert.Equal(t, game.Fold, Choose(weak, d, nil).Action, "%s", d)
	}
}

func TestBetSizeClampedToStack(t *testing.T) {
	t.Parallel()
	sit := situation(0.95, 0, []game.LegalAction{
		{Action: game.Check},
		{Action: game.Bet, Min: 10, Max: 25},
		{Action: game.AllIn, Min: 25, Max: 25},
	})
	sit.Pot = 1000
	sit.Chips, sit.Stack = 25, 25

	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		dec := Choose(sit, d, nil)
		require.Equal(t, game.Bet, dec.Action, "%s", d)
		assert.Equal(t, 25, dec.Amount, "%s", d)
	}
}

func TestBetSizeAtLeastBigBlind(t *testing.T) {
	t.Parallel()
	sit := situation(0.95, 0, noBet)
	sit.Pot = 4

	dec := Choose(sit, Beginner, nil)
	assert.Equal(t, game.Bet, dec.Action)
	assert.Equal(t, 10, dec.Amount)
}

func TestRaiseFallsBackWhenStackTooShort(t *testing.T) {
	t.Parallel()
	sit := situation(0.95, 40, []game.LegalAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 40, Max: 40},
		{Action: game.AllIn, Min: 45, Max: 45},
	})
	sit.Chips, sit.Stack = 45, 45
	sit.Pot = 10

	dec := Choose(sit, Beginner, nil)
	assert.Equal(t, game.Call, dec.Action)
}

func TestSafeDefaultOnBadStrength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, game.Check, Choose(situation(math.NaN(), 0, noBet), Advanced, nil).Action)
	assert.Equal(t, game.Fold, Choose(situation(math.NaN(), 40, facingBet), Advanced, nil).Action)
}

func TestDecideWithoutLegalActions(t *testing.T) {
	t.Parallel()
	d := New(Advanced, nil).Decide(game.Snapshot{CurrentPlayer: -1})
	assert.Equal(t, game.Fold, d.Action)
}

func TestNeverChecksFacingBet(t *testing.T) {
	t.Parallel()
	rng := randutil.New(9)
	for range 2000 {
		sit := situation(rng.Float64(), 40, facingBet)
		sit.Position = rng.Float64()
		for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
			dec := Choose(sit, d, rng)
			assert.NotEqual(t, game.Check, dec.Action)
			assert.True(t, game.Allows(facingBet, dec.Action, dec.Amount), "%s chose %s", d, dec)
		}
	}
}

func seats(n int) []game.SeatSpec {
	specs := make([]game.SeatSpec, n)
	for i := range specs {
		specs[i] = game.SeatSpec{Name: fmt.Sprintf("Player %d", i), Chips: 200 + 100*i}
	}
	specs[0].Human = true
	return specs
}

func TestBotsPlayLegalHands(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 100; seed++ {
		rng := randutil.New(seed)
		n := 2 + int(seed%5)
		h, err := game.NewHand(randutil.Derive(rng), seats(n), 10)
		require.NoError(t, err)

		bots := []*Bot{
			New(Beginner, randutil.Derive(rng)),
			New(Intermediate, randutil.Derive(rng)),
			New(Advanced, randutil.Derive(rng)),
		}

		for steps := 0; !h.IsComplete(); steps++ {
			require.Less(t, steps, 200)
			seat := h.CurrentPlayer
			snap := h.Snapshot(seat)
			dec := bots[seat%len(bots)].Decide(snap)
			require.True(t, game.Allows(snap.Legal, dec.Action, dec.Amount),
				"seed %d seat %d chose %s from %v", seed, seat, dec, snap.Legal)

			h, err = game.ApplyAction(h, seat, dec.Action, dec.Amount)
			require.NoError(t, err)
		}
	}
}

func TestDecideUsesOwnCardsOnly(t *testing.T) {
	t.Parallel()
	deck, err := poker.NewStackedDeck(poker.MustParseCards("2c As 7d Ah")...)
	require.NoError(t, err)
	h, err := game.NewHand(nil, seats(2), 10, game.WithDeck(deck))
	require.NoError(t, err)

	// Seat 1 holds aces and is first to act.
	d := Decide(h, Beginner, nil)
	assert.InDelta(t, 0.95, d.Strength, 1e-9)
	assert.Equal(t, game.Raise, d.Action)
	assert.Equal(t, 20, d.Amount)
}
