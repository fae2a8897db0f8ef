package pir

import "github.com/spiralpir/core/poly"

// Expand implements Stage A, coefficient expansion: given a vector v of
// Regev ciphertexts where only v[0] is meaningful, it expands v in place
// so that v[k] ends up encrypting the k-th coefficient of v[0]'s
// underlying plaintext polynomial (scaled by a round-dependent
// constant), for every k the caller's stopRound/maxBitsToGenRight
// selection retains.
//
// Ported directly from original_source/spiral-rs/src/server.rs's
// coefficient_expansion, preserving its loop structure, its literal
// stop-round skip-rule precedence (the expression below is deliberately
// not re-parenthesized — see DESIGN.md's Open Question entry), and its
// mutable-vector write ordering: v[numIn+i] is always written before
// v[i] is read again in the same iteration i, because the write happens
// as the very first step of the iteration body.
func Expand(
	ctx *poly.Context,
	v []*poly.MatrixNTT,
	g, stopRound int,
	wLeft, wRight []*poly.MatrixNTT,
	neg1 []*poly.MatrixNTT,
	maxBitsToGenRight int,
) {
	p := ctx.Params
	n := p.N

	ct := ctx.NewRaw(2, 1)
	ctAuto := ctx.NewRaw(2, 1)
	ctAuto1 := ctx.NewRaw(1, 1)
	ctAuto1NTT := ctx.NewNTT(1, 1)
	ginvLeft := ctx.NewRaw(p.TExpLeft, 1)
	ginvLeftNTT := ctx.NewNTT(p.TExpLeft, 1)
	ginvRight := ctx.NewRaw(p.TExpRight, 1)
	ginvRightNTT := ctx.NewNTT(p.TExpRight, 1)
	wTimesGinv := ctx.NewNTT(2, 1)

	for r := 0; r < g; r++ {
		numIn := 1 << r
		numOut := 2 * numIn
		t := (n / (1 << r)) + 1

		neg1Round := neg1[r]

		for i := 0; i < numOut; i++ {
			if stopRound > 0 && i%2 == 1 && r > stopRound ||
				(r == stopRound && i/2 >= maxBitsToGenRight) {
				continue
			}

			var w *poly.MatrixNTT
			var tExp int
			var ginvRaw *poly.MatrixRaw
			var ginvNTT *poly.MatrixNTT
			if i%2 == 0 {
				w, tExp, ginvRaw, ginvNTT = wLeft[r], p.TExpLeft, ginvLeft, ginvLeftNTT
			} else {
				w, tExp, ginvRaw, ginvNTT = wRight[r], p.TExpRight, ginvRight, ginvRightNTT
			}

			if i < numIn {
				ctx.ScalarMultiply(v[numIn+i], neg1Round, v[i])
			}

			ctx.FromNTT(ct, v[i])
			for row := 0; row < 2; row++ {
				ctx.Ring.Automorph(ctAuto.Poly(row, 0), ct.Poly(row, 0), t)
			}

			ctx.GadgetInvertRDim(ginvRaw, ctAuto, 1, tExp)
			ctx.ToNTTNoReduce(ginvNTT, ginvRaw)

			copy(ctAuto1.Poly(0, 0), ctAuto.Poly(1, 0))
			ctx.ToNTT(ctAuto1NTT, ctAuto1)

			ctx.Multiply(wTimesGinv, w, ginvNTT)

			crt := p.CRTCount
			for j := 0; j < 2; j++ {
				viRow := v[i].Poly(j, 0)
				wtRow := wTimesGinv.Poly(j, 0)
				ct1Row := ctAuto1NTT.Poly(0, 0)
				for crtIdx := 0; crtIdx < crt; crtIdx++ {
					base := crtIdx * n
					for z := 0; z < n; z++ {
						sum := viRow[base+z] + wtRow[base+z]
						if j == 1 {
							sum += ct1Row[base+z]
						}
						viRow[base+z] = ctx.Ring.BarrettCoeffU64(sum, crtIdx)
					}
				}
			}
		}
	}
}
