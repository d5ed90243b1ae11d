package phh

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DecodeAll reads a .phhs file of numbered sections, as written by
// EncodeAll. A file holding a single unsectioned hand is also accepted.
func DecodeAll(r io.Reader) ([]HandHistory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var single HandHistory
	meta, err := toml.Decode(string(data), &single)
	if err == nil && meta.IsDefined("variant") {
		return []HandHistory{single}, nil
	}

	sections := make(map[string]HandHistory)
	if _, err := toml.Decode(string(data), &sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSectionKeys)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hand := sections[k]
		if hand.HandID == "" {
			hand.HandID = k
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func compareSectionKeys(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai - bi
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Net returns each player's result for the hand, keyed by name.
func (h *HandHistory) Net() map[string]int {
	net := make(map[string]int, len(h.Players))
	for i, name := range h.Players {
		if i < len(h.FinishingStacks) && i < len(h.StartingStacks) {
			net[name] = h.FinishingStacks[i] - h.StartingStacks[i]
		}
	}
	return net
}
