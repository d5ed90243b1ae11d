package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lox/holdem-coach/poker"
)

// MaxSeats is the largest table the engine deals for.
const MaxSeats = 10

// ActionRecord is one entry in the hand history
type ActionRecord struct {
	Seat   int
	Street Street
	Action Action
	Amount int  // Chips moved into the pot by the action
	Total  int  // The seat's street bet after the action
	Raised bool // The action raised the current bet
}

// ShowdownResult is one evaluated hand at showdown
type ShowdownResult struct {
	Seat int
	Hand poker.HandResult
	Won  int
}

// Result is the hand outcome from the human player's perspective.
// ChipsDelta is the net change in the human's chips over the hand.
type Result struct {
	Won        bool
	ChipsDelta int
}

// RoundState represents the state of a poker hand
type RoundState struct {
	Players       []*Player
	Community     []poker.Card
	Pot           Pot
	Street        Street
	Betting       BettingRound
	CurrentPlayer int // -1 when nobody is due to act
	BigBlind      int
	SmallBlind    int
	Hero          int // Seat of the human player
	Message       string
	History       []ActionRecord
	Showdown      []ShowdownResult

	deck *poker.Deck
}

// NewHand deals a new hand: shuffles a fresh deck with rng, deals two hole
// cards to each active seat and posts the blinds.
func NewHand(rng *rand.Rand, seats []SeatSpec, bigBlind int, opts ...HandOption) (*RoundState, error) {
	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateSeats(seats, bigBlind); err != nil {
		return nil, err
	}

	deck := cfg.deck
	if deck == nil {
		if rng == nil {
			return nil, invalidConfig("a random source is required to shuffle")
		}
		deck = poker.NewDeck(rng)
	}

	players := make([]*Player, len(seats))
	hero := -1
	for i, spec := range seats {
		players[i] = &Player{
			Seat:   i,
			Name:   spec.Name,
			Human:  spec.Human,
			Chips:  spec.Chips,
			Active: !spec.SittingOut,
		}
		if spec.Human {
			hero = i
		}
	}

	s := &RoundState{
		Players:       players,
		Street:        Preflop,
		Betting:       NewBettingRound(len(players), bigBlind),
		CurrentPlayer: -1,
		BigBlind:      bigBlind,
		SmallBlind:    bigBlind / 2,
		Hero:          hero,
		deck:          deck,
	}

	if err := s.dealHoleCards(); err != nil {
		return nil, err
	}
	bbSeat := s.postBlinds()

	s.CurrentPlayer = s.nextToAct(bbSeat + 1)
	if s.CurrentPlayer == -1 || s.Betting.IsBettingComplete(s.Players) {
		if err := s.endStreet(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func validateSeats(seats []SeatSpec, bigBlind int) error {
	if bigBlind <= 0 {
		return invalidConfig("big blind must be positive, got %d", bigBlind)
	}
	if len(seats) > MaxSeats {
		return invalidConfig("at most %d seats, got %d", MaxSeats, len(seats))
	}
	active, humans := 0, 0
	for i, spec := range seats {
		if spec.Human {
			humans++
		}
		if spec.SittingOut {
			continue
		}
		if spec.Chips <= 0 {
			return invalidConfig("seat %d has no chips (%d)", i, spec.Chips)
		}
		active++
	}
	if active < 2 {
		return invalidConfig("at least 2 active players required, got %d", active)
	}
	if humans != 1 {
		return invalidConfig("exactly one human seat required, got %d", humans)
	}
	return nil
}

func (h *RoundState) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for _, p := range h.Players {
			if !p.Active {
				continue
			}
			card, err := h.deck.DealOne()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			card.FaceUp = p.Human
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

// postBlinds posts the small blind from the first active seat after the
// dealer and the big blind from the next. It returns the big blind seat.
func (h *RoundState) postBlinds() int {
	sbSeat := h.nextActive(1)
	bbSeat := h.nextActive(sbSeat + 1)

	sb := h.Players[sbSeat]
	h.Pot.Add(sb.commit(h.SmallBlind))
	bb := h.Players[bbSeat]
	h.Pot.Add(bb.commit(h.BigBlind))

	h.Betting.CurrentBet = max(sb.Bet, bb.Bet)
	h.Betting.LastRaiser = bbSeat
	h.Message = fmt.Sprintf("%s posts small blind (%d), %s posts big blind (%d)",
		sb.Name, sb.Bet, bb.Name, bb.Bet)
	return bbSeat
}

// nextActive returns the first seated, dealt-in seat at or after from.
func (h *RoundState) nextActive(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if h.Players[pos].Active {
			return pos
		}
	}
	return -1
}

// nextToAct returns the first seat at or after from that can still act, or
// -1 if every seat is folded, all-in or sitting out.
func (h *RoundState) nextToAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		pos := ((from+i)%n + n) % n
		if h.Players[pos].CanAct() {
			return pos
		}
	}
	return -1
}

// LegalActions returns the allowed actions for seat. Only the seat due to act
// has any; the set is empty once the hand is complete.
func (h *RoundState) LegalActions(seat int) []LegalAction {
	if h.IsComplete() || seat != h.CurrentPlayer || seat < 0 || seat >= len(h.Players) {
		return nil
	}
	return h.Betting.ValidActions(h.Players[seat])
}

// LegalActions is the functional form of RoundState.LegalActions.
func LegalActions(h *RoundState, seat int) []LegalAction {
	return h.LegalActions(seat)
}

// ApplyAction returns the state after seat takes action. The amount is the
// seat's total street bet for Bet and Raise and is ignored otherwise. If the
// action is not legal an *IllegalActionError is returned and h is unchanged;
// h is never modified in any case.
func ApplyAction(h *RoundState, seat int, action Action, amount int) (*RoundState, error) {
	return h.Apply(seat, action, amount)
}

// Apply is the method form of ApplyAction.
func (h *RoundState) Apply(seat int, action Action, amount int) (*RoundState, error) {
	if h.IsComplete() {
		return nil, &IllegalActionError{Seat: seat, Action: action, Amount: amount, Cause: ErrHandComplete}
	}
	if seat != h.CurrentPlayer {
		return nil, &IllegalActionError{
			Seat:   seat,
			Action: action,
			Amount: amount,
			Reason: fmt.Sprintf("seat %d is due to act", h.CurrentPlayer),
			Cause:  ErrOutOfTurn,
		}
	}

	legal := h.Betting.ValidActions(h.Players[seat])
	la, ok := Find(legal, action)
	if !ok {
		return nil, illegal(seat, action, amount, "allowed: %v", legal)
	}
	if (action == Bet || action == Raise) && (amount < la.Min || amount > la.Max) {
		return nil, illegal(seat, action, amount, "amount must be between %d and %d", la.Min, la.Max)
	}

	next := h.Clone()
	if err := next.apply(seat, action, amount); err != nil {
		return nil, err
	}
	return next, nil
}

func (h *RoundState) apply(seat int, action Action, amount int) error {
	p := h.Players[seat]
	moved := 0
	priorBet := h.Betting.CurrentBet

	switch action {
	case Fold:
		p.Folded = true
		h.Message = fmt.Sprintf("%s folds", p.Name)

	case Check:
		h.Message = fmt.Sprintf("%s checks", p.Name)

	case Call:
		moved = p.commit(h.Betting.CurrentBet - p.Bet)
		h.Message = fmt.Sprintf("%s calls %d", p.Name, moved)
		if p.AllIn {
			h.Message += " and is all-in!"
		}

	case Bet, Raise:
		moved = p.commit(amount - p.Bet)
		h.Betting.markAggression(seat, p.Bet)
		verb := "bets"
		if action == Raise {
			verb = "raises to"
		}
		h.Message = fmt.Sprintf("%s %s %d", p.Name, verb, p.Bet)
		if p.AllIn {
			h.Message += " and is all-in!"
		}

	case AllIn:
		moved = p.commit(p.Chips)
		if p.Bet > h.Betting.CurrentBet {
			h.Betting.markAggression(seat, p.Bet)
			h.Message = fmt.Sprintf("%s goes all-in for %d!", p.Name, p.Bet)
		} else {
			h.Message = fmt.Sprintf("%s calls and is all-in for %d!", p.Name, p.Bet)
		}
	}

	h.Pot.Add(moved)
	h.Betting.Acted[seat] = true
	h.History = append(h.History, ActionRecord{
		Seat:   seat,
		Street: h.Street,
		Action: action,
		Amount: moved,
		Total:  p.Bet,
		Raised: h.Betting.CurrentBet > priorBet,
	})

	return h.advance(seat)
}

// advance moves the turn after seat has acted, ending the street or the hand
// when appropriate.
func (h *RoundState) advance(seat int) error {
	if contenders := h.contenders(); len(contenders) == 1 {
		h.awardUncontested(contenders[0])
		return nil
	}

	if h.Betting.IsBettingComplete(h.Players) {
		return h.endStreet()
	}

	h.CurrentPlayer = h.nextToAct(seat + 1)
	if h.CurrentPlayer == -1 {
		// Nobody can act: force the hand forward rather than wait.
		return h.endStreet()
	}
	return nil
}

// endStreet closes the current street and deals the next one. When fewer
// than two players can still bet, the remaining board is run out and the
// hand goes straight to showdown.
func (h *RoundState) endStreet() error {
	for {
		for _, p := range h.Players {
			p.Bet = 0
		}
		h.Betting.ResetForNewStreet()

		if h.Street >= River {
			h.showdown()
			return nil
		}
		if err := h.dealStreet(h.Street + 1); err != nil {
			return err
		}

		if h.countCanAct() >= 2 {
			h.CurrentPlayer = h.nextToAct(1)
			return nil
		}
	}
}

func (h *RoundState) dealStreet(street Street) error {
	n := street.boardSize() - len(h.Community)
	cards, err := h.deck.Deal(n)
	if err != nil {
		return fmt.Errorf("dealing the %s: %w", street, err)
	}
	for _, c := range cards {
		h.Community = append(h.Community, c.Revealed())
	}
	h.Street = street
	h.Message = fmt.Sprintf("Dealing the %s...", street)
	return nil
}

// contenders returns the seats still contesting the pot
func (h *RoundState) contenders() []int {
	var seats []int
	for i, p := range h.Players {
		if p.InHand() {
			seats = append(seats, i)
		}
	}
	return seats
}

func (h *RoundState) countCanAct() int {
	n := 0
	for _, p := range h.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// IsComplete returns true once the pot has been awarded
func (h *RoundState) IsComplete() bool {
	return h.Street == Complete
}

// Result returns the outcome for the human player once the hand is
// complete.
func (h *RoundState) Result() (Result, bool) {
	if !h.IsComplete() || h.Hero < 0 {
		return Result{}, false
	}
	hero := h.Players[h.Hero]
	return Result{
		Won:        hero.Winner,
		ChipsDelta: hero.Won - hero.TotalBet,
	}, true
}

// Winners returns the seats that won chips this hand
func (h *RoundState) Winners() []int {
	var seats []int
	for i, p := range h.Players {
		if p.Winner {
			seats = append(seats, i)
		}
	}
	return seats
}

// CardsRemaining returns the number of undealt cards
func (h *RoundState) CardsRemaining() int {
	return h.deck.CardsRemaining()
}

// Clone returns a deep copy of the state
func (h *RoundState) Clone() *RoundState {
	cp := *h
	cp.Players = make([]*Player, len(h.Players))
	for i, p := range h.Players {
		cp.Players[i] = p.clone()
	}
	cp.Community = slices.Clone(h.Community)
	cp.Betting = h.Betting.clone()
	cp.History = slices.Clone(h.History)
	cp.Showdown = slices.Clone(h.Showdown)
	cp.deck = h.deck.Clone()
	return &cp
}
