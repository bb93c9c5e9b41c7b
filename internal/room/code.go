package room

import (
	"errors"
	"math/rand"
)

// codeAlphabet omits visually ambiguous symbols (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 4

// codeSpace is the number of distinct codes (32^4).
const codeSpace = 32 * 32 * 32 * 32

var ErrCodeSpaceExhausted = errors.New("room code space exhausted")

func randCode(rng *rand.Rand) string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// AllocateCode draws 4-character codes until one misses the existing set.
// It fails only when the caller supplies a full keyspace, which no realistic
// room count reaches.
func AllocateCode(rng *rand.Rand, existing map[string]bool) (string, error) {
	if len(existing) >= codeSpace {
		return "", ErrCodeSpaceExhausted
	}
	for {
		code := randCode(rng)
		if !existing[code] {
			return code, nil
		}
	}
}
