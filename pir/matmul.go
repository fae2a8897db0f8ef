package pir

import (
	"fmt"

	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/poly"
	"github.com/spiralpir/core/ring"
)

const mask32 = (uint64(1) << params.PackedOffset) - 1

// MultiplyDatabase implements Stage C, the database inner product hot
// loop: out[i] := sum over k in [0, dim0) of V_reg[k] * DB[k, i], for
// every i in [0, num_per).
//
// db and vFirstdim both arrive in the packed two-residue layout (db per
// the DB layout contract, vFirstdim per ReorientRegCiphertexts' output).
// This is the portable fallback for a SIMD-accelerated path: it performs
// the identical packed-multiply and Barrett-reduction schedule an
// AVX2 variant would, chunked by params.MaxSummed, so outputs are
// bit-identical to any accelerated implementation.
//
// A SIMD-accelerated path is optional; this package ships only the
// portable one. internal/simdsel.HasAVX2 is exposed for a caller that
// wants to gate a future accelerated implementation on it, but
// MultiplyDatabase itself always runs the scalar core below, so its
// output is bit-identical regardless of the host CPU.
func MultiplyDatabase(ctx *poly.Context, out []*poly.MatrixNTT, db, vFirstdim []uint64, dim0, numPer int) {
	if dim0*2 < params.MaxSummed {
		panic(fmt.Sprintf("pir: MultiplyDatabase: dim0*2 (%d) must be >= MaxSummed (%d)", dim0*2, params.MaxSummed))
	}
	multiplyDatabaseScalar(ctx, out, db, vFirstdim, dim0, numPer)
}

func multiplyDatabaseScalar(ctx *poly.Context, out []*poly.MatrixNTT, db, vFirstdim []uint64, dim0, numPer int) {
	p := ctx.Params
	n := p.N
	if p.CRTCount != 2 {
		panic(fmt.Sprintf("pir: MultiplyDatabase: packed layout requires crt_count 2, got %d", p.CRTCount))
	}
	mod0 := ctx.Ring.ModulusAt(0)
	mod1 := ctx.Ring.ModulusAt(1)

	innerLimit := params.MaxSummed
	outerLimit := (dim0 * 2) / innerLimit

	for z := 0; z < n; z++ {
		idxABase := z * (dim0 * 2)
		idxBRowBase := z * (numPer * dim0)

		for i := 0; i < numPer; i++ {
			idxBBase := idxBRowBase + i*dim0

			var accN0, accN2 [4]uint64

			bPos := idxBBase
			for oj := 0; oj < outerLimit; oj++ {
				var laneN0 [4]uint64
				var laneN2 [4]uint64

				for ij := 0; ij < innerLimit/4; ij++ {
					jm := idxABase + oj*innerLimit + 4*ij

					b1 := db[bPos]
					bPos++
					b2 := db[bPos]
					bPos++

					a0 := vFirstdim[jm]
					a1 := vFirstdim[jm+1]
					a2 := vFirstdim[jm+2]
					a3 := vFirstdim[jm+3]

					b1Lo, b1Hi := b1&mask32, b1>>params.PackedOffset
					b2Lo, b2Hi := b2&mask32, b2>>params.PackedOffset

					laneN0[0] += (a0 & mask32) * b1Lo
					laneN0[1] += (a1 & mask32) * b1Lo
					laneN0[2] += (a2 & mask32) * b2Lo
					laneN0[3] += (a3 & mask32) * b2Lo

					laneN2[0] += (a0 >> params.PackedOffset) * b1Hi
					laneN2[1] += (a1 >> params.PackedOffset) * b1Hi
					laneN2[2] += (a2 >> params.PackedOffset) * b2Hi
					laneN2[3] += (a3 >> params.PackedOffset) * b2Hi
				}

				for idx := 0; idx < 4; idx++ {
					accN0[idx] = ring.BRedAdd(laneN0[idx]+accN0[idx], mod0.Q, mod0.BRedConst)
					accN2[idx] = ring.BRedAdd(laneN2[idx]+accN2[idx], mod1.Q, mod1.BRedConst)
				}
			}

			for idx := 0; idx < 4; idx++ {
				accN0[idx] = ring.BRedAdd(accN0[idx], mod0.Q, mod0.BRedConst)
				accN2[idx] = ring.BRedAdd(accN2[idx], mod1.Q, mod1.BRedConst)
			}

			row0Res0 := ring.BRedAdd(accN0[0]+accN0[2], mod0.Q, mod0.BRedConst)
			row1Res0 := ring.BRedAdd(accN0[1]+accN0[3], mod0.Q, mod0.BRedConst)
			row0Res1 := ring.BRedAdd(accN2[0]+accN2[2], mod1.Q, mod1.BRedConst)
			row1Res1 := ring.BRedAdd(accN2[1]+accN2[3], mod1.Q, mod1.BRedConst)

			out[i].Residue(0, 0, 0)[z] = row0Res0
			out[i].Residue(1, 0, 0)[z] = row1Res0
			out[i].Residue(0, 0, 1)[z] = row0Res1
			out[i].Residue(1, 0, 1)[z] = row1Res1
		}
	}
}
