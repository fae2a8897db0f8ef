// Package simdsel reports, at runtime, whether the running CPU supports
// AVX2, the instruction set an accelerated Database Inner Product
// (pir.MultiplyDatabase) path would use. pir ships only the portable
// scalar implementation and does not call this package.
//
// This is the Go analogue of the Rust original's
// #[cfg(target_feature = "avx2")] compile-time gate: Go cannot gate on a
// target feature at compile time in the same way, so the check moves
// to a runtime capability probe instead, using klauspost/cpuid/v2.
package simdsel

import "github.com/klauspost/cpuid/v2"

// HasAVX2 reports whether the running CPU supports the AVX2 instruction
// set.
func HasAVX2() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}
