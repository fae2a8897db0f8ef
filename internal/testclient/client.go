// Package testclient implements the minimal client-side collaborator
// the PIR core's test scenarios need to drive: Regev keygen/encrypt/
// decrypt, the per-round automorphism key-switching keys pir.Expand
// consumes, and the conversion key pir.ConvertToGSW consumes.
//
// Client-side key generation and encryption are external collaborators
// with fixed-contract interfaces, out of scope for the core itself; the
// exact construction used by the original client
// (original_source/spiral-rs/src/client.rs) was not part of the
// retained oracle slice. What follows is derived directly from the
// algebraic relations pir.Expand and pir.ConvertToGSW require of their
// key inputs — worked out from the update equations those two functions
// implement, not copied from any retained source.
package testclient

import (
	"math"
	"math/big"

	"github.com/spiralpir/core/internal/prng"
	"github.com/spiralpir/core/poly"
)

// errorBound bounds the (centered) magnitude of freshly sampled LWE
// error terms. Test-only: large enough to be nonzero noise, small
// enough that it never approaches the plaintext scaling factor.
const errorBound = 6

// Client holds a secret key and the randomness source used to generate
// it and every ciphertext/key derived from it.
type Client struct {
	ctx *poly.Context
	rng *prng.PRNG
	sk  *poly.MatrixNTT // 1x1 NTT-domain secret key polynomial s
}

// New creates a Client with a freshly sampled ternary secret key, using
// the package's deterministic seeded PRNG so scenario runs are
// reproducible.
func New(ctx *poly.Context) *Client {
	c := &Client{ctx: ctx, rng: prng.Seeded()}
	skRaw := ctx.NewRaw(1, 1)
	p := skRaw.Poly(0, 0)
	qU := c.modulusUint64()
	for z := range p {
		switch c.rng.Uint64N(3) {
		case 0:
			p[z] = 0
		case 1:
			p[z] = 1
		default:
			p[z] = qU - 1 // -1 mod Q
		}
	}
	c.sk = ctx.NewNTT(1, 1)
	ctx.ToNTT(c.sk, skRaw)
	return c
}

func (c *Client) modulusUint64() uint64 {
	q := c.ctx.Params.Q
	if !q.IsUint64() {
		panic("testclient: ciphertext modulus does not fit a uint64")
	}
	return q.Uint64()
}

// uniformNTT returns a fresh uniformly random 1x1 NTT-domain polynomial,
// the "a" component of a fresh LWE sample.
func (c *Client) uniformNTT() *poly.MatrixNTT {
	m := c.ctx.NewNTT(1, 1)
	crt := c.ctx.Params.CRTCount
	for crtIdx := 0; crtIdx < crt; crtIdx++ {
		mod := c.ctx.Ring.ModulusAt(crtIdx)
		res := m.Residue(0, 0, crtIdx)
		for z := range res {
			res[z] = c.rng.Uint64N(mod.Q)
		}
	}
	return m
}

// smallErrorNTT returns a fresh small-magnitude LWE error term, sampled
// in coefficient form (each coefficient uniform in [-errorBound,
// errorBound], centered mod Q) and converted to NTT.
func (c *Client) smallErrorNTT() *poly.MatrixNTT {
	raw := c.ctx.NewRaw(1, 1)
	p := raw.Poly(0, 0)
	qU := c.modulusUint64()
	for z := range p {
		magnitude := c.rng.Uint64N(2*errorBound + 1) // in [0, 2*errorBound]
		if magnitude <= errorBound {
			p[z] = magnitude
		} else {
			p[z] = qU - (magnitude - errorBound)
		}
	}
	nttOut := c.ctx.NewNTT(1, 1)
	c.ctx.ToNTT(nttOut, raw)
	return nttOut
}

// broadcastPow2 returns the 1x1 NTT-domain constant polynomial equal to
// 2^shift reduced modulo each CRT prime (every NTT coefficient of a
// constant polynomial equals that constant reduced mod the residue's
// prime, since a degree-zero polynomial evaluates to itself everywhere).
func broadcastPow2(ctx *poly.Context, shift int) *poly.MatrixNTT {
	m := ctx.NewNTT(1, 1)
	crt := ctx.Params.CRTCount
	two := big.NewInt(2)
	exp := big.NewInt(int64(shift))
	for crtIdx := 0; crtIdx < crt; crtIdx++ {
		mod := ctx.Ring.ModulusAt(crtIdx)
		val := new(big.Int).Exp(two, exp, new(big.Int).SetUint64(mod.Q))
		v := val.Uint64()
		res := m.Residue(0, 0, crtIdx)
		for z := range res {
			res[z] = v
		}
	}
	return m
}

// negOneConst returns the 1x1 NTT-domain constant polynomial "-1".
func negOneConst(ctx *poly.Context) *poly.MatrixNTT {
	m := ctx.NewNTT(1, 1)
	crt := ctx.Params.CRTCount
	for crtIdx := 0; crtIdx < crt; crtIdx++ {
		mod := ctx.Ring.ModulusAt(crtIdx)
		res := m.Residue(0, 0, crtIdx)
		for z := range res {
			res[z] = mod.Q - 1
		}
	}
	return m
}

// EncryptRegev encrypts the 1x1 NTT-domain polynomial m as a 2x1 Regev
// ciphertext (c0, c1) = (a*s + e + m, a), satisfying decrypt(ct) =
// c0 - c1*s = m + e.
func (c *Client) EncryptRegev(m *poly.MatrixNTT) *poly.MatrixNTT {
	a := c.uniformNTT()
	e := c.smallErrorNTT()

	as := c.ctx.NewNTT(1, 1)
	c.ctx.Multiply(as, a, c.sk)

	c0 := c.ctx.NewNTT(1, 1)
	c.ctx.AddNTT(c0, as, e)
	c.ctx.AddNTT(c0, c0, m)

	ct := c.ctx.NewNTT(2, 1)
	ct.CopyInto(c0, 0, 0)
	ct.CopyInto(a, 1, 0)
	return ct
}

// EncryptScalar encrypts the plain integer value val (placed at the
// polynomial's degree-zero coefficient, all others zero) as a Regev
// ciphertext — the collaborator test scenarios call
// "encrypt_matrix_reg(sigma.ntt())" with sigma a single-coefficient
// raw polynomial.
func (c *Client) EncryptScalar(val uint64) *poly.MatrixNTT {
	raw := c.ctx.NewRaw(1, 1)
	raw.Poly(0, 0)[0] = val
	m := c.ctx.NewNTT(1, 1)
	c.ctx.ToNTT(m, raw)
	return c.EncryptRegev(m)
}

// DecryptRegev decrypts a 2-row NTT-domain matrix of arbitrary column
// count, applying decrypt(col) = ct[0,col] - ct[1,col]*s to every
// column independently and returning the result in raw (coefficient)
// form as a 1 x cols matrix. This is general enough to decrypt both a
// plain Regev ciphertext (1 column) and a GSW ciphertext's flattened
// column set (2*t_gsw columns), matching how the oracle's
// decrypt_matrix_reg is used against both shapes.
func (c *Client) DecryptRegev(ct *poly.MatrixNTT) *poly.MatrixRaw {
	if ct.Rows != 2 {
		panic("testclient: DecryptRegev requires a 2-row ciphertext")
	}
	outNTT := c.ctx.NewNTT(1, ct.Cols)
	tmp := c.ctx.NewNTT(1, 1)
	col0 := c.ctx.NewNTT(1, 1)
	col1 := c.ctx.NewNTT(1, 1)
	for col := 0; col < ct.Cols; col++ {
		copy(col0.Poly(0, 0), ct.Poly(0, col))
		copy(col1.Poly(0, 0), ct.Poly(1, col))
		c.ctx.Multiply(tmp, col1, c.sk)
		c.ctx.SubNTT(tmp, col0, tmp)
		copy(outNTT.Poly(0, col), tmp.Poly(0, 0))
	}
	outRaw := c.ctx.NewRaw(1, ct.Cols)
	c.ctx.FromNTT(outRaw, outNTT)
	return outRaw
}

// DecodeBit implements the dec_reg test collaborator: decrypts a Regev
// ciphertext encrypting a value scaled by scaleK, recenters, rounds, and
// reports 1 if the rounded value is nonzero.
func (c *Client) DecodeBit(ct *poly.MatrixNTT, scaleK uint64) uint64 {
	dec := c.DecryptRegev(ct)
	qU := c.modulusUint64()
	val := int64(dec.Poly(0, 0)[0])
	if uint64(val) >= qU/2 {
		val -= int64(qU)
	}
	rounded := int64(math.Round(float64(val) / float64(scaleK)))
	if rounded == 0 {
		return 0
	}
	return 1
}

// DecodeGSWBit implements the dec_gsw test collaborator: decrypts a GSW
// ciphertext and inspects the coefficient that should carry a large
// value iff the encoded bit is 1.
func (c *Client) DecodeGSWBit(ct *poly.MatrixNTT, tgsw int) uint64 {
	dec := c.DecryptRegev(ct)
	n := c.ctx.Params.N
	idx := (tgsw-1)*n + n
	qU := c.modulusUint64()
	val := int64(dec.Data[idx])
	if uint64(val) >= qU/2 {
		val -= int64(qU)
	}
	if val < 100 && val > -100 {
		return 0
	}
	return 1
}

// automorph applies the ring automorphism sigma_t to an NTT-domain 1x1
// polynomial by round-tripping through raw (coefficient) form, where
// ring.Automorph operates.
func (c *Client) automorph(m *poly.MatrixNTT, t int) *poly.MatrixNTT {
	raw := c.ctx.NewRaw(1, 1)
	c.ctx.FromNTT(raw, m)
	autoRaw := c.ctx.NewRaw(1, 1)
	c.ctx.Ring.Automorph(autoRaw.Poly(0, 0), raw.Poly(0, 0), t)
	autoNTT := c.ctx.NewNTT(1, 1)
	c.ctx.ToNTT(autoNTT, autoRaw)
	return autoNTT
}

// genExpansionKey builds one round's automorphism key-switching key
// (either the left or right branch) for automorphism exponent t and
// gadget dimension texp: a 2 x texp NTT matrix whose column l satisfies
// column[1,l] = w1_l (uniform), column[0,l] = w1_l*s + e_l +
// B^l*(s + sigma_t(s)) — the relation pir.Expand's per-round update
// requires (derived from that update equation; see the package doc
// comment).
func (c *Client) genExpansionKey(t, texp int) *poly.MatrixNTT {
	sAuto := c.automorph(c.sk, t)
	sPlusSAuto := c.ctx.NewNTT(1, 1)
	c.ctx.AddNTT(sPlusSAuto, c.sk, sAuto)

	bitsPer := c.ctx.Params.BitsPer(texp)
	w := c.ctx.NewNTT(2, texp)
	for l := 0; l < texp; l++ {
		w1 := c.uniformNTT()
		e := c.smallErrorNTT()

		w1s := c.ctx.NewNTT(1, 1)
		c.ctx.Multiply(w1s, w1, c.sk)

		scaled := c.ctx.NewNTT(1, 1)
		basis := broadcastPow2(c.ctx, bitsPer*l)
		c.ctx.ScalarMultiply(scaled, basis, sPlusSAuto)

		w0 := c.ctx.NewNTT(1, 1)
		c.ctx.AddNTT(w0, w1s, e)
		c.ctx.AddNTT(w0, w0, scaled)

		copy(w.Poly(0, l), w0.Poly(0, 0))
		copy(w.Poly(1, l), w1.Poly(0, 0))
	}
	return w
}

// GenExpansionKeys builds the per-round left/right expansion keys and
// the per-round "-1" scalar table pir.Expand consumes, for g rounds.
func (c *Client) GenExpansionKeys(g int) (wLeft, wRight, neg1 []*poly.MatrixNTT) {
	n := c.ctx.Params.N
	texpLeft, texpRight := c.ctx.Params.TExpLeft, c.ctx.Params.TExpRight
	wLeft = make([]*poly.MatrixNTT, g)
	wRight = make([]*poly.MatrixNTT, g)
	neg1 = make([]*poly.MatrixNTT, g)
	negOne := negOneConst(c.ctx)
	for r := 0; r < g; r++ {
		t := (n / (1 << r)) + 1
		wLeft[r] = c.genExpansionKey(t, texpLeft)
		wRight[r] = c.genExpansionKey(t, texpRight)
		neg1[r] = negOne
	}
	return wLeft, wRight, neg1
}

// GenConversionKey builds the conversion key pir.ConvertToGSW consumes:
// a 2 x 2*tConv NTT matrix structured as two t_conv-wide halves. Column
// l of the first half encrypts B^l*s; column l of the second half
// encrypts -B^l*s^2. Feeding this matrix and the gadget decomposition of
// a Regev ciphertext (c0, c1) encrypting m through pir.ConvertToGSW's
// matrix product reconstructs an encryption of m*s (see the package doc
// comment for the derivation: the first half reconstructs s*c0, the
// second half -s^2*c1, and c0 - c1*s = m).
func (c *Client) GenConversionKey(tConv int) *poly.MatrixNTT {
	bitsPer := c.ctx.Params.BitsPer(tConv)
	v := c.ctx.NewNTT(2, 2*tConv)

	sSquared := c.ctx.NewNTT(1, 1)
	c.ctx.Multiply(sSquared, c.sk, c.sk)

	for l := 0; l < tConv; l++ {
		basis := broadcastPow2(c.ctx, bitsPer*l)

		a0 := c.uniformNTT()
		e0 := c.smallErrorNTT()
		a0s := c.ctx.NewNTT(1, 1)
		c.ctx.Multiply(a0s, a0, c.sk)
		bTimesS := c.ctx.NewNTT(1, 1)
		c.ctx.ScalarMultiply(bTimesS, basis, c.sk)
		b0 := c.ctx.NewNTT(1, 1)
		c.ctx.AddNTT(b0, a0s, e0)
		c.ctx.AddNTT(b0, b0, bTimesS)
		copy(v.Poly(0, l), b0.Poly(0, 0))
		copy(v.Poly(1, l), a0.Poly(0, 0))

		a1 := c.uniformNTT()
		e1 := c.smallErrorNTT()
		a1s := c.ctx.NewNTT(1, 1)
		c.ctx.Multiply(a1s, a1, c.sk)
		bTimesS2 := c.ctx.NewNTT(1, 1)
		c.ctx.ScalarMultiply(bTimesS2, basis, sSquared)
		b1 := c.ctx.NewNTT(1, 1)
		c.ctx.AddNTT(b1, a1s, e1)
		c.ctx.SubNTT(b1, b1, bTimesS2)
		copy(v.Poly(0, tConv+l), b1.Poly(0, 0))
		copy(v.Poly(1, tConv+l), a1.Poly(0, 0))
	}
	return v
}
