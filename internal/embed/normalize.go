package embed

import "math"

// Normalize scales v to unit length in place and returns the resulting
// norm. A zero vector is replaced by the first basis vector so every
// output stays comparable by dot product.
func Normalize(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	norm := L2(v)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		for i := range v {
			v[i] = 0
		}
		v[0] = 1
		return 1
	}

	for i := range v {
		v[i] /= norm
	}
	return L2(v)
}

// L2 returns the Euclidean norm of v.
func L2(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
