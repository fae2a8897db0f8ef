package poly

import "github.com/spiralpir/core/ring"

// AddNTT computes dst = a + b, an entrywise NTT-domain matrix sum (a, b,
// dst must share shape), each CRT residue reduced via BRedAdd. A small
// companion to Multiply/ScalarMultiply that the client-side test
// collaborators (internal/testclient) need to assemble ciphertexts from
// their NTT-domain parts.
func (c *Context) AddNTT(dst, a, b *MatrixNTT) {
	n, crt := c.Params.N, c.Params.CRTCount
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			aP := a.Poly(i, j)
			bP := b.Poly(i, j)
			out := dst.Poly(i, j)
			for crtIdx := 0; crtIdx < crt; crtIdx++ {
				mod := c.Ring.ModulusAt(crtIdx)
				base := crtIdx * n
				for z := 0; z < n; z++ {
					out[base+z] = ring.BRedAdd(aP[base+z]+bP[base+z], mod.Q, mod.BRedConst)
				}
			}
		}
	}
}

// SubNTT computes dst = a - b, entrywise in NTT domain.
func (c *Context) SubNTT(dst, a, b *MatrixNTT) {
	n, crt := c.Params.N, c.Params.CRTCount
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			aP := a.Poly(i, j)
			bP := b.Poly(i, j)
			out := dst.Poly(i, j)
			for crtIdx := 0; crtIdx < crt; crtIdx++ {
				mod := c.Ring.ModulusAt(crtIdx)
				base := crtIdx * n
				for z := 0; z < n; z++ {
					out[base+z] = ring.BRedAdd(aP[base+z]+(mod.Q-bP[base+z]), mod.Q, mod.BRedConst)
				}
			}
		}
	}
}
