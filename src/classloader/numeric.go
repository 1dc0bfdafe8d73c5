package classloader

import "math"

// decodeFloat32 reinterprets a wire-format u32 as IEEE-754 binary32,
// per spec.md's Float entry (no NaN canonicalization is performed; the
// bit pattern is carried through verbatim).
func decodeFloat32(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// decodeFloat64 reinterprets a (high32<<32)|low32 combination as
// IEEE-754 binary64, per spec.md's Double entry.
func decodeFloat64(bits uint64) float64 {
	return math.Float64frombits(bits)
}
