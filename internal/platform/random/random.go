package random

import "math/rand/v2"

// Source abstracts chance rolls so reward logic stays deterministic in tests.
type Source interface {
	Float64() float64
}

type Math struct{}

func (Math) Float64() float64 {
	return rand.Float64()
}

// Fixed always rolls the same value. Test helper.
type Fixed float64

func (f Fixed) Float64() float64 {
	return float64(f)
}
