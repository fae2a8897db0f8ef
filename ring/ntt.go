package ring

import (
	"fmt"
	"math/big"
)

// Table holds everything needed to run the forward and inverse
// negacyclic NTT modulo one CRT prime: a bit-reversed table of powers of
// a primitive 2N-th root of unity psi (forward) and its inverse
// (backward), both pre-lifted into the Montgomery domain so that the
// hot-loop butterflies need not convert their polynomial operands.
//
// The butterfly shape (precomputed twiddle in Montgomery form, plain
// data in and out) follows the standard split-radix negacyclic NTT
// layout; GenTable's primitive-root search is supporting infrastructure
// this PIR core needs on its own, since a full RNS modulus-chain prime
// generator (built around choosing a *chain* of NTT-friendly primes for
// a multi-scheme modulus chain) is more machinery than a fixed, already-
// chosen CRT pair needs here.
type Table struct {
	Mod Modulus
	N   int

	psiPowBitrevMont    []uint64
	psiInvPowBitrevMont []uint64
	nInv                uint64
}

// GenTable builds the NTT table for modulus m and ring degree n. n must
// be a power of two and m.Q must be congruent to 1 modulo 2n.
func GenTable(m Modulus, n int) (*Table, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("ring: N=%d must be a power of two", n)
	}
	twoN := uint64(2 * n)
	if (m.Q-1)%twoN != 0 {
		return nil, fmt.Errorf("ring: modulus %d is not NTT-friendly for N=%d (q-1 not divisible by 2N)", m.Q, n)
	}

	psi, err := findPrimitive2NthRoot(m.Q, n)
	if err != nil {
		return nil, err
	}
	psiInv := modInverse(psi, m.Q)
	nInv := modInverse(uint64(n), m.Q)

	logN := 0
	for 1<<logN < n {
		logN++
	}

	psiPow := make([]uint64, n)
	psiInvPow := make([]uint64, n)
	cur, curInv := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		br := bitReverse(i, logN)
		psiPow[br] = MForm(cur, m)
		psiInvPow[br] = MForm(curInv, m)
		cur = BRed(cur, psi, m.Q, m.BRedConst)
		curInv = BRed(curInv, psiInv, m.Q, m.BRedConst)
	}

	return &Table{
		Mod:                 m,
		N:                   n,
		psiPowBitrevMont:    psiPow,
		psiInvPowBitrevMont: psiInvPow,
		nInv:                nInv,
	}, nil
}

func bitReverse(x, logN int) int {
	r := 0
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// findPrimitive2NthRoot returns psi such that psi^(2n) == 1 (mod q) and
// psi^n == q-1 (mod q), i.e. a primitive 2n-th root of unity.
func findPrimitive2NthRoot(q uint64, n int) (uint64, error) {
	factorsOfQMinus1 := primeFactors(q - 1)
	exp := (q - 1) / uint64(2*n)

	for g := uint64(2); g < q; g++ {
		if !isGenerator(g, q, factorsOfQMinus1) {
			continue
		}
		psi := modPow(g, exp, q)
		if modPow(psi, uint64(n), q) == q-1 {
			return psi, nil
		}
	}
	return 0, fmt.Errorf("ring: no primitive 2N-th root of unity found for q=%d, N=%d", q, n)
}

func isGenerator(g, q uint64, factors []uint64) bool {
	for _, p := range factors {
		if modPow(g, (q-1)/p, q) == 1 {
			return false
		}
	}
	return true
}

func primeFactors(x uint64) []uint64 {
	var factors []uint64
	for p := uint64(2); p*p <= x; p++ {
		if x%p == 0 {
			factors = append(factors, p)
			for x%p == 0 {
				x /= p
			}
		}
	}
	if x > 1 {
		factors = append(factors, x)
	}
	return factors
}

func modPow(base, exp, mod uint64) uint64 {
	r := big.NewInt(1)
	b := new(big.Int).SetUint64(base)
	e := new(big.Int).SetUint64(exp)
	m := new(big.Int).SetUint64(mod)
	r.Exp(b, e, m)
	return r.Uint64()
}

func modInverse(a, mod uint64) uint64 {
	r := new(big.Int).ModInverse(new(big.Int).SetUint64(a), new(big.Int).SetUint64(mod))
	if r == nil {
		panic(fmt.Sprintf("ring: %d has no inverse modulo %d", a, mod))
	}
	return r.Uint64()
}

// butterfly computes X, Y = U + V*psi, U - V*psi (mod 2q), matching the
// teacher's ring/ntt.go butterfly.
func butterfly(u, v, psiMont, q, qInv uint64) (x, y uint64) {
	if u >= 2*q {
		u -= 2 * q
	}
	vp := MRedConstant(v, psiMont, q, qInv)
	x = u + vp
	y = u + 2*q - vp
	return
}

// invbutterfly computes X, Y = U + V, (U - V)*psiInv (mod 2q), the
// standard Gentleman-Sande inverse-NTT butterfly.
func invbutterfly(u, v, psiInvMont, q, qInv uint64) (x, y uint64) {
	x = u + v
	if x >= 2*q {
		x -= 2 * q
	}
	y = MRedConstant(u+2*q-v, psiInvMont, q, qInv)
	return
}

// NTTLazy runs the forward transform in place. On return, every
// coefficient lies in [0, 4q); callers needing the canonical [0, q)
// range must call Normalize.
func (t *Table) NTTLazy(coeffs []uint64) {
	q, qInv := t.Mod.Q, t.Mod.MRedConst
	n := t.N

	tt := n >> 1
	for m := 1; m < n; m <<= 1 {
		k := 0
		for i := 0; i < m; i++ {
			psi := t.psiPowBitrevMont[m+i]
			for j := k; j < k+tt; j++ {
				coeffs[j], coeffs[j+tt] = butterfly(coeffs[j], coeffs[j+tt], psi, q, qInv)
			}
			k += 2 * tt
		}
		tt >>= 1
	}
}

// InvNTTLazy runs the inverse transform in place, including the final
// multiplication by N^-1, leaving coefficients in [0, 4q).
func (t *Table) InvNTTLazy(coeffs []uint64) {
	q, qInv := t.Mod.Q, t.Mod.MRedConst
	n := t.N

	tt := 1
	for m := n >> 1; m >= 1; m >>= 1 {
		k := 0
		for i := 0; i < m; i++ {
			psiInv := t.psiInvPowBitrevMont[m+i]
			for j := k; j < k+tt; j++ {
				coeffs[j], coeffs[j+tt] = invbutterfly(coeffs[j], coeffs[j+tt], psiInv, q, qInv)
			}
			k += 2 * tt
		}
		tt <<= 1
	}

	nInvMont := MForm(t.nInv, t.Mod)
	for i := range coeffs {
		coeffs[i] = MRedConstant(coeffs[i], nInvMont, q, qInv)
	}
}

// Normalize reduces every coefficient from [0, 4q) into the canonical
// [0, q) range.
func (t *Table) Normalize(coeffs []uint64) {
	q := t.Mod.Q
	for i, c := range coeffs {
		if c >= 2*q {
			c -= 2 * q
		}
		if c >= q {
			c -= q
		}
		coeffs[i] = c
	}
}

// NormalizeLazy reduces every coefficient from [0, 4q) into [0, 2q), the
// general NTT-form invariant used everywhere outside ToNTTNoReduce.
func (t *Table) NormalizeLazy(coeffs []uint64) {
	q := t.Mod.Q
	for i, c := range coeffs {
		if c >= 2*q {
			c -= 2 * q
		}
		coeffs[i] = c
	}
}
