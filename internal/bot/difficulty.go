package bot

import (
	"fmt"
	"strings"
)

// Difficulty selects how well the computer opponents play.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts the tier names and their easy/medium/hard aliases.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "easy", "low":
		return Beginner, nil
	case "intermediate", "medium", "mid":
		return Intermediate, nil
	case "advanced", "hard", "high":
		return Advanced, nil
	default:
		return Beginner, fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", s)
	}
}

// UnmarshalText lets kong and HCL decode a difficulty by name.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Noise is the half-width of the uniform perturbation added to strength
// estimates. Weaker tiers misjudge their hands more.
func (d Difficulty) Noise() float64 {
	switch d {
	case Beginner:
		return 0.15
	case Intermediate:
		return 0.10
	default:
		return 0.05
	}
}
