// Package gameid generates identifiers for hands and sessions.
package gameid

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

// Generator hands out IDs. With a random source the sequence is
// reproducible, which keeps seeded sessions replayable; without one it
// produces time-ordered UUIDv7s.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a new generator. rng may be nil.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate creates a new time-ordered ID
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID using the generator's random source
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var id uuid.UUID
	var err error
	if g.rng != nil {
		id, err = uuid.NewRandomFromReader(rngReader{g.rng})
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		// Only the system entropy source can fail; fall back to v4.
		id = uuid.New()
	}
	return Encode(id)
}

// rngReader adapts a math/rand generator to io.Reader for uuid.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// Encode writes a UUID as 26 characters of base32. The 128 bits are
// left-padded with two zero bits, so the first character is at most '7'.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Decode reverses Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
