// Package params defines the server-side parameter set for a Spiral-style
// single-server PIR query core: the CRT ciphertext modulus, the ring
// degree, the gadget base dimensions for the four key kinds, the two
// database dimensions, and the values derived from them.
//
// The construction style follows core/rlwe's ParametersLiteral /
// NewParameters split between a plain literal struct and a validated,
// derived-value-bearing type: Literal is what a caller writes down,
// Params is what the core consumes.
package params

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Literal is the caller-supplied description of a parameter set. All
// fields are mandatory; New validates and derives the rest.
type Literal struct {
	// Moduli is the CRT factorization of the ciphertext modulus q. Each
	// entry must be an odd prime strictly below 1<<28 so that two
	// residues pack into one 64-bit word (see PackedOffset).
	Moduli []uint64

	// N is the ring degree, a power of two.
	N int

	// TExpLeft, TExpRight, TConv, TGSW are the gadget base dimensions for,
	// respectively, the left and right expansion keys, the conversion
	// key, and the GSW ciphertexts produced by conversion.
	TExpLeft, TExpRight, TConv, TGSW int

	// DBDim1, DBDim2 are the log2 sizes of the first and second database
	// dimensions.
	DBDim1, DBDim2 int

	// PtModulus is the plaintext modulus.
	PtModulus uint64
}

// PackedOffset is the bit offset at which the second CRT residue is
// packed into a 64-bit word (spec constant PACKED_OFFSET_2).
const PackedOffset = 32

// MaxSummed is the chunk size used by the Stage C inner-product
// accumulation before an intermediate Barrett reduction is required.
const MaxSummed = 1 << 6

// Params is the fully-derived, read-only parameter set consumed by the
// pir package. Construct with New; all fields are safe to read
// concurrently once built.
type Params struct {
	Literal

	// Q is the product of Moduli (the full ciphertext modulus).
	Q *big.Int

	// CRTCount is len(Moduli).
	CRTCount int

	// ScaleK is floor(Q / PtModulus), the encoding scale for a single
	// plaintext bit/digit.
	ScaleK uint64

	// G is the number of coefficient-expansion rounds and StopRound is
	// the round after which the right-hand branch of the expansion tree
	// is truncated to MaxBitsToGenRight entries (see pir.Expand).
	G, StopRound int

	// MaxBitsToGenRight is the number of right-branch leaves the
	// expansion needs to produce: one Regev ciphertext per (second-dim
	// index, GSW digit) pair.
	MaxBitsToGenRight int
}

// New validates lit and returns the derived Params.
func New(lit Literal) (*Params, error) {
	if len(lit.Moduli) == 0 {
		return nil, fmt.Errorf("params: at least one CRT modulus is required")
	}
	for _, q := range lit.Moduli {
		if q == 0 || q>>28 != 0 {
			return nil, fmt.Errorf("params: CRT modulus %d must be in (0, 1<<28)", q)
		}
	}
	if lit.N <= 0 || lit.N&(lit.N-1) != 0 {
		return nil, fmt.Errorf("params: N=%d must be a power of two", lit.N)
	}
	if lit.TExpLeft <= 0 || lit.TExpRight <= 0 || lit.TConv <= 0 || lit.TGSW <= 0 {
		return nil, fmt.Errorf("params: gadget dimensions must be positive")
	}
	if lit.DBDim1 < 0 || lit.DBDim2 < 0 {
		return nil, fmt.Errorf("params: database dimensions must be non-negative")
	}
	if lit.PtModulus < 2 {
		return nil, fmt.Errorf("params: plaintext modulus must be >= 2")
	}

	q := big.NewInt(1)
	for _, qi := range lit.Moduli {
		q.Mul(q, new(big.Int).SetUint64(qi))
	}

	scale := new(big.Int).Quo(q, new(big.Int).SetUint64(lit.PtModulus))
	if !scale.IsUint64() {
		return nil, fmt.Errorf("params: modulus too large relative to word size")
	}

	maxBitsRight := lit.TGSW * lit.DBDim2
	g := lit.DBDim1
	if maxBitsRight > 0 {
		g += ceilLog2(maxBitsRight)
	}
	stopRound := 0
	if g > lit.DBDim1 {
		stopRound = lit.DBDim1
	}

	return &Params{
		Literal:           lit,
		Q:                 q,
		CRTCount:          len(lit.Moduli),
		ScaleK:            scale.Uint64(),
		G:                 g,
		StopRound:         stopRound,
		MaxBitsToGenRight: maxBitsRight,
	}, nil
}

// Dim0 returns 2^DBDim1, the size of the first database dimension.
func (p *Params) Dim0() int { return 1 << p.DBDim1 }

// NumPer returns 2^DBDim2, the size of the second database dimension.
func (p *Params) NumPer() int { return 1 << p.DBDim2 }

// BitsPer returns the digit width used by a gadget decomposition into t
// digits for this parameter set's modulus: ceil(bitlen(Q) / t).
func (p *Params) BitsPer(t int) int {
	bl := p.Q.BitLen()
	return (bl + t - 1) / t
}

func ceilLog2(x int) int {
	if x <= 1 {
		return 0
	}
	return bits.Len(uint(x - 1))
}
