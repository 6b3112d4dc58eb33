// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"fmt"
	"math"
)

// Vector is a sparse vector with strictly increasing indices.
type Vector struct {
	Indices []int     `json:"i"`
	Values  []float64 `json:"v"`
}

// IsZero reports whether the vector has no non-zero entries.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// It is 0 when either vector is all-zero.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	c := Dot(a, b) / (na * nb)
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return Vector{}
	}
	vals := make([]float64, len(v.Values))
	for i, x := range v.Values {
		vals[i] = x / n
	}
	return Vector{Indices: v.Indices, Values: vals}
}

func (v Vector) validate(dim int) error {
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("%d indices but %d values", len(v.Indices), len(v.Values))
	}
	for k, i := range v.Indices {
		if i < 0 || i >= dim {
			return fmt.Errorf("index %d out of range [0,%d)", i, dim)
		}
		if k > 0 && v.Indices[k-1] >= i {
			return fmt.Errorf("indices not strictly increasing at %d", i)
		}
	}
	return nil
}
