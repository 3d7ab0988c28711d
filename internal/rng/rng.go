// Package rng provides the small seeded generator used for maze layout.
// The recurrence is fixed so a seed always reproduces the same maze,
// independent of Go version or platform.
package rng

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Random is a linear congruential generator. Each instance owns its state.
type Random struct {
	value int64
}

// New creates a generator for the given seed. Any int64 is accepted;
// the seed is folded into the generator's range first.
func New(seed int64) *Random {
	v := seed % modulus
	if v < 0 {
		v += modulus
	}
	return &Random{value: v}
}

// Next returns the next value in [0, 1).
func (r *Random) Next() float64 {
	r.value = (r.value*multiplier + increment) % modulus
	return float64(r.value) / modulus
}

// Intn returns a value in [0, n). Returns 0 for n <= 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Next() * float64(n))
	if i >= n { // float rounding guard
		i = n - 1
	}
	return i
}

// Shuffle permutes n elements using Fisher-Yates driven by this generator.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
