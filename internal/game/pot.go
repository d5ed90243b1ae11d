package game

import "slices"

// Pot is the single pot of a hand. Every chip a player commits moves into
// it immediately; it is emptied when the hand is awarded.
//
// Players all-in for different amounts are not split into side pots: the
// winner of the hand takes the whole pot, whatever their own contribution.
type Pot struct {
	Amount int
}

// Add moves chips into the pot
func (pot *Pot) Add(amount int) {
	pot.Amount += amount
}

// Award distributes the whole pot among winners and empties it. Shares are
// floored; each odd chip goes to one winner, in seat order starting from the
// first seat left of the dealer. The returned map is keyed by seat.
func (pot *Pot) Award(winners []int, numSeats int) map[int]int {
	shares := splitPot(pot.Amount, winners, numSeats)
	pot.Amount = 0
	return shares
}

// splitPot divides amount among winners with the odd-chip rule above.
func splitPot(amount int, winners []int, numSeats int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return shares
	}

	ordered := slices.Clone(winners)
	slices.SortFunc(ordered, func(a, b int) int {
		return distanceFromDealer(a, numSeats) - distanceFromDealer(b, numSeats)
	})

	share := amount / len(ordered)
	remainder := amount % len(ordered)
	for i, seat := range ordered {
		shares[seat] = share
		if i < remainder {
			shares[seat]++
		}
	}
	return shares
}

// distanceFromDealer orders seats clockwise from the dealer at seat 0, so
// seat 1 comes first and the dealer last.
func distanceFromDealer(seat, numSeats int) int {
	return (seat - 1 + numSeats) % numSeats
}
