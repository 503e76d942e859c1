package index

import (
	"fmt"
	"strings"
)

// Probing selects how successive attempts move through the table after the
// first slot is occupied. A table uses one policy for its whole lifetime, since
// lookups and deletions must replay the exact sequence insertion used.
type Probing int

const (
	// Linear probes h, h+1, h+2, ... and reaches every slot.
	Linear Probing = iota
	// Quadratic probes h, h+1, h+4, h+9, ... and may not reach every slot.
	Quadratic
)

func (p Probing) String() string {
	switch p {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("Probing(%d)", int(p))
	}
}

// ParseProbing converts a configuration value into a Probing policy.
func ParseProbing(s string) (Probing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	default:
		return Linear, fmt.Errorf("unknown probing policy %q (want linear or quadratic)", s)
	}
}

// Hash sums the code points of the lowercased key and reduces the sum modulo
// capacity. Anagrams always collide.
func Hash(key string, capacity int) int {
	total := 0
	for _, r := range strings.ToLower(key) {
		total += int(r)
	}
	return total % capacity
}

// slotFor returns the candidate slot for the given attempt of a probe sequence
// that starts at home.
func (p Probing) slotFor(home, attempt, capacity int) int {
	if p == Quadratic {
		return (home + attempt*attempt) % capacity
	}
	return (home + attempt) % capacity
}
