package helper

import (
	"crypto/rand"
	"fmt"
	"sync/atomic"
)

// referenceAlphabet leaves out 0/O, 1/I and L: reference numbers are read
// aloud at the door and scanned off phone screens.
const referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ReferenceGenerator produces guest-facing ticket codes:
// event prefix + six time-derived digits + four random characters,
// e.g. DIW482913K7QM.
type ReferenceGenerator struct {
	prefix string
	clock  Clock
	seq    uint64
}

func NewReferenceGenerator(prefix string, clock Clock) *ReferenceGenerator {
	return &ReferenceGenerator{prefix: prefix, clock: clock}
}

// Next never repeats within a process: the digit block advances with every
// call even when the clock stands still, and the random suffix covers
// collisions across restarts.
func (g *ReferenceGenerator) Next() string {
	n := atomic.AddUint64(&g.seq, 1)
	digits := (uint64(g.clock.Now().Unix()) + n) % 1000000

	suffix := make([]byte, 4)
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to the sequence so references stay unique locally.
		for i := range suffix {
			suffix[i] = referenceAlphabet[(n>>uint(i*5))%uint64(len(referenceAlphabet))]
		}
		return fmt.Sprintf("%s%06d%s", g.prefix, digits, suffix)
	}
	for i, b := range raw {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("%s%06d%s", g.prefix, digits, suffix)
}
