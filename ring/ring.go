package ring

import "fmt"

// Ring ties together the per-CRT-prime NTT tables for a fixed ring
// degree N and CRT factorization, and implements the Raw<->NTT
// conversions and Barrett-corrected arithmetic the PIR core needs.
type Ring struct {
	N      int
	Moduli []uint64
	tables []*Table

	// QFull is the product of Moduli. The PIR core's parameters keep
	// CRTCount small (typically 2, each modulus < 1<<28), so this
	// product always fits in a uint64; FromNTT's CRT reconstruction
	// relies on that bound.
	QFull uint64

	// crtRecon[i] holds, for CRT residue i>=1, the constant used to fold
	// that residue into the running CRT reconstruction (see FromNTT).
	crtRecon []crtStep
}

type crtStep struct {
	qProd    uint64 // product of moduli[0..i)
	invMod   uint64 // (qProd)^-1 mod moduli[i]
	modulus  uint64
}

// NewRing builds the NTT tables for every CRT prime in moduli.
func NewRing(n int, moduli []uint64) (*Ring, error) {
	if len(moduli) == 0 {
		return nil, fmt.Errorf("ring: at least one modulus required")
	}
	tables := make([]*Table, len(moduli))
	for i, q := range moduli {
		t, err := GenTable(NewModulus(q), n)
		if err != nil {
			return nil, fmt.Errorf("ring: modulus %d: %w", q, err)
		}
		tables[i] = t
	}

	recon := make([]crtStep, len(moduli))
	qProd := uint64(1)
	for i, q := range moduli {
		if i > 0 {
			recon[i] = crtStep{qProd: qProd % q, invMod: modInverse(qProd%q, q), modulus: q}
		}
		qProd *= q
	}

	qFull := uint64(1)
	for _, q := range moduli {
		qFull *= q
	}

	return &Ring{N: n, Moduli: moduli, tables: tables, crtRecon: recon, QFull: qFull}, nil
}

func (r *Ring) CRTCount() int { return len(r.Moduli) }

// ModulusAt returns the Modulus (and its precomputed reduction
// constants) for the crtIdx-th CRT prime.
func (r *Ring) ModulusAt(crtIdx int) Modulus { return r.tables[crtIdx].Mod }

// BarrettCoeffU64 reduces x modulo the n-th CRT prime. This is the
// collaborator named barrett_coeff_u64.
func (r *Ring) BarrettCoeffU64(x uint64, crtIdx int) uint64 {
	m := r.tables[crtIdx].Mod
	return BRedAdd(x, m.Q, m.BRedConst)
}

// ToNTT converts a raw (coefficient-domain) polynomial, whose
// coefficients are reduced modulo the full product modulus Q, into its
// per-CRT NTT-domain representation, with every output word reduced to
// the general NTT-form invariant range [0, 2*q_n).
func (r *Ring) ToNTT(dst [][]uint64, src []uint64) {
	for c, t := range r.tables {
		row := dst[c]
		m := t.Mod
		for z, coeff := range src {
			row[z] = BRedAdd(coeff, m.Q, m.BRedConst)
		}
		t.NTTLazy(row)
		t.NormalizeLazy(row)
	}
}

// ToNTTNoReduce behaves like ToNTT but skips the final range
// normalization: outputs may exceed the general [0, 2*q_n) invariant and
// must be passed through BarrettCoeffU64 before any subsequent
// multiplication.
func (r *Ring) ToNTTNoReduce(dst [][]uint64, src []uint64) {
	for c, t := range r.tables {
		row := dst[c]
		m := t.Mod
		for z, coeff := range src {
			row[z] = BRedAdd(coeff, m.Q, m.BRedConst)
		}
		t.NTTLazy(row)
	}
}

// FromNTT converts a per-CRT NTT-domain polynomial back into raw
// coefficient form modulo the full product modulus Q, via CRT
// reconstruction.
func (r *Ring) FromNTT(dst []uint64, src [][]uint64) {
	crtCount := len(r.Moduli)
	tmp := make([][]uint64, crtCount)
	for c, t := range r.tables {
		buf := make([]uint64, r.N)
		copy(buf, src[c])
		t.InvNTTLazy(buf)
		t.Normalize(buf)
		tmp[c] = buf
	}

	for z := 0; z < r.N; z++ {
		dst[z] = r.crtCombine(tmp, z)
	}
}

// crtCombine folds the per-prime residues at position z into a single
// value modulo the product of all moduli, via iterative (Garner-style)
// CRT reconstruction.
func (r *Ring) crtCombine(residues [][]uint64, z int) uint64 {
	x := residues[0][z]
	qProd := r.Moduli[0]
	for i := 1; i < len(r.Moduli); i++ {
		step := r.crtRecon[i]
		qi := step.modulus
		xi := residues[i][z]
		xModQi := x % qi
		diff := (xi + qi - xModQi) % qi
		t := BRed(diff, step.invMod, qi, r.tables[i].Mod.BRedConst)
		x += qProd * t
		qProd *= qi
	}
	return x
}
