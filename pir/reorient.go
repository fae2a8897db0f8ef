package pir

import (
	"fmt"

	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/poly"
)

// ReorientRegCiphertexts repacks the first dim0 Regev ciphertexts of vReg
// into the Stage-C input layout (the reorient_reg_ciphertexts
// collaborator): for each polynomial coefficient z, a block of dim0*2
// packed words indexed
// [z*dim0*2 + (k*2+row)], each packing the ciphertext's two CRT residues
// into one 64-bit word at the same 32-bit offset the database uses.
//
// dst must already hold dim0*2*n words. The packed layout assumes
// crt_count == 2, as does the rest of Stage C.
func ReorientRegCiphertexts(ctx *poly.Context, dst []uint64, vReg []*poly.MatrixNTT, dim0 int) {
	p := ctx.Params
	n := p.N

	if p.CRTCount != 2 {
		panic(fmt.Sprintf("pir: ReorientRegCiphertexts: packed layout requires crt_count 2, got %d", p.CRTCount))
	}
	if len(dst) < dim0*2*n {
		panic(fmt.Sprintf("pir: ReorientRegCiphertexts: dst too small: need %d words, have %d", dim0*2*n, len(dst)))
	}

	for k := 0; k < dim0; k++ {
		ct := vReg[k]
		for row := 0; row < 2; row++ {
			res0 := ct.Residue(row, 0, 0)
			res1 := ct.Residue(row, 0, 1)
			for z := 0; z < n; z++ {
				dst[z*dim0*2+(k*2+row)] = res0[z] | (res1[z] << params.PackedOffset)
			}
		}
	}
}
