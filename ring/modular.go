// Package ring implements the CRT/NTT polynomial arithmetic layer that
// backs the PIR core: Barrett and Montgomery modular reduction, a
// negacyclic number-theoretic transform per CRT prime, and the raw-domain
// automorphism used by coefficient expansion.
//
// The reduction routines are the standard Barrett/Montgomery pair used
// throughout lattice-crypto libraries. Everything RNS/CKKS/sampling-
// specific a general-purpose ring package might also carry (basis
// extension, ternary/Gaussian sampling, scaling, conjugate-invariant
// rings) has no component here to serve and was left out — see
// DESIGN.md.
package ring

import (
	"math/big"
	"math/bits"
)

// Modulus bundles a CRT prime with the precomputed constants needed by
// the Barrett and Montgomery reduction routines below.
type Modulus struct {
	Q         uint64
	BRedConst [2]uint64
	MRedConst uint64 // qInv such that Q * qInv == 1 (mod 2^64)
	RSquare   uint64 // 2^128 mod q, used to lift values into Montgomery form
}

// NewModulus derives the Barrett and Montgomery constants for q.
func NewModulus(q uint64) Modulus {
	bred := BRedParams(q)
	return Modulus{
		Q:         q,
		BRedConst: bred,
		MRedConst: MRedParams(q),
		RSquare:   rSquare(q),
	}
}

// rSquare computes 2^128 mod q using arbitrary-precision arithmetic.
// This only runs once per modulus at Ring construction time, not on the
// NTT hot path, so big.Int is an acceptable cost here.
func rSquare(q uint64) uint64 {
	r := new(big.Int).Lsh(big.NewInt(1), 128)
	r.Mod(r, new(big.Int).SetUint64(q))
	return r.Uint64()
}

// BRedParams computes the Barrett reduction constants for q: the two
// 64-bit halves of floor(2^128 / q).
func BRedParams(q uint64) [2]uint64 {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))
	mhi := new(big.Int).Rsh(bigR, 64).Uint64()
	mlo := bigR.Uint64()
	return [2]uint64{mhi, mlo}
}

// BRedAdd reduces an arbitrary 64-bit value x modulo q using the
// precomputed Barrett constants u.
func BRedAdd(x, q uint64, u [2]uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	r := x - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// BRed computes x*y mod q using Barrett reduction.
func BRed(x, y, q uint64, u [2]uint64) uint64 {
	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, u[1])

	mhi, mlo = bits.Mul64(alo, u[0])
	s0, carry = bits.Add64(mlo, lhi, 0)
	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r := alo - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// MRedParams computes qInv = q^-1 mod 2^64, required by MRed.
func MRedParams(q uint64) uint64 {
	qInv := uint64(1)
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return qInv
}

// MForm switches a (any value in [0, q)) into the Montgomery domain by
// computing a*2^64 mod q, via a*RSquare*2^-64 mod q.
func MForm(a uint64, m Modulus) uint64 {
	return MRed(a, m.RSquare, m.Q, m.MRedConst)
}

// InvMForm switches a out of the Montgomery domain: a*2^-64 mod q.
func InvMForm(a uint64, m Modulus) uint64 {
	r, _ := bits.Mul64(a*m.MRedConst, m.Q)
	r = m.Q - r
	if r >= m.Q {
		r -= m.Q
	}
	return r
}

// MRed computes x*y*2^-64 mod q, where at least one of x, y is already
// in the Montgomery domain.
func MRed(x, y, q, qInv uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r := ahi - H + q
	if r >= q {
		r -= q
	}
	return r
}

// MRedConstant is MRed without the final conditional subtraction: the
// result lies in [0, 2q) rather than [0, q).
func MRedConstant(x, y, q, qInv uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	return ahi - H + q
}
