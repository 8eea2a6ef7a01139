package room

import (
	"fmt"
	"math/rand"
)

// codeAlphabet excludes visually ambiguous glyphs (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

const codeMaxRetries = 100

// generateCode produces one random 6-character room code from the
// unambiguous alphabet.
func generateCode(rng *rand.Rand) string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// errCodeSpaceExhausted is returned when codeMaxRetries consecutive
// collisions occur — a fatal allocation error per spec.md §4.10.
var errCodeSpaceExhausted = fmt.Errorf("room: exhausted %d attempts to allocate a unique room code", codeMaxRetries)
