// Package lcg generates deterministic pseudo-random input arrays from four
// integers (length, multiplier, increment, modulus) using a linear
// congruential recurrence.
//
// # Recurrence
//
//	x[0] = a mod p
//	x[i] = (x[i-1]*a + b) mod p
//
// All products are computed in 128 bits, so any 64-bit a, b and p are
// accepted without overflow.
//
// # Parallel generation
//
// The step x -> a*x + b is an affine map, and composing it with itself s
// times is again affine. GenerateParallel uses this to jump directly to the
// start of each chunk in O(log s) and fills chunks concurrently on a
// workerpool.Pool. The output is identical to Generate.
//
// # Example Usage
//
//	data, err := lcg.Generate(lcg.Params{Length: 5, Multiplier: 3, Increment: 1, Modulus: 100})
//	// data == []uint64{3, 10, 31, 94, 83}
package lcg
