// Package game implements the betting state machine for a single hand of
// Texas Hold'em.
//
// The main type is RoundState, which holds the players, community cards, pot
// and betting position for one hand. States are values threaded through the
// engine: ApplyAction never mutates the state it is given, it returns the
// next state, so any state can be kept, compared or discarded freely.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	s, err := game.NewHand(rng, []game.SeatSpec{
//	    {Name: "You", Chips: 1000, Human: true},
//	    {Name: "Player 1", Chips: 1000},
//	    {Name: "Player 2", Chips: 1000},
//	}, 10)
//	for !s.IsComplete() {
//	    s, err = game.ApplyAction(s, s.CurrentPlayer, game.Call, 0)
//	}
//	result, _ := s.Result()
//
// # Deterministic Testing
//
// NewHand takes the random source used for the shuffle. A fixed seed, or the
// WithDeck option and a stacked deck, reproduce a hand exactly.
//
// # Rules
//
// Seat 0 is the dealer. The first active seat after it posts the small blind
// (half the big blind) and the next posts the big blind. Preflop action starts
// after the big blind; later streets start at the first seat after the
// dealer. A street ends when every player who can still act has matched the
// current bet and has acted since the last bet or raise. Blinds do not count
// as acting, so the big blind always gets its option.
//
// The hand keeps a single pot. Players all-in for different amounts compete
// for the whole pot; side pots are not modelled.
package game
