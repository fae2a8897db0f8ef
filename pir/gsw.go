package pir

import (
	"fmt"

	"github.com/spiralpir/core/poly"
)

// ConvertToGSW implements Stage B, Regev-to-GSW conversion: it assembles
// params.DBDim2 GSW ciphertexts out of 2*TGSW*DBDim2 Regev ciphertexts
// produced by Expand.
//
// Ported directly from original_source/spiral-rs/src/server.rs's
// regev_to_gsw.
func ConvertToGSW(
	ctx *poly.Context,
	gOut []*poly.MatrixNTT,
	vInp []*poly.MatrixNTT,
	vConv *poly.MatrixNTT,
	idxFactor, idxOffset int,
) {
	p := ctx.Params
	if vConv.Rows != 2 {
		panic(fmt.Sprintf("pir: ConvertToGSW: v_conv must have 2 rows, got %d", vConv.Rows))
	}
	if vConv.Cols != 2*p.TConv {
		panic(fmt.Sprintf("pir: ConvertToGSW: v_conv must have %d cols, got %d", 2*p.TConv, vConv.Cols))
	}

	ginvCInp := ctx.NewRaw(2*p.TConv, 1)
	ginvCInpNTT := ctx.NewNTT(2*p.TConv, 1)
	tmpCtRaw := ctx.NewRaw(2, 1)
	tmpCt := ctx.NewNTT(2, 1)

	for i := 0; i < p.DBDim2; i++ {
		ct := gOut[i]
		for j := 0; j < p.TGSW; j++ {
			idxCt := i*p.TGSW + j
			idxInp := idxFactor*idxCt + idxOffset

			ct.CopyInto(vInp[idxInp], 0, 2*j+1)

			ctx.FromNTT(tmpCtRaw, vInp[idxInp])
			ctx.GadgetInvert(ginvCInp, tmpCtRaw, p.TConv)
			ctx.ToNTT(ginvCInpNTT, ginvCInp)
			ctx.Multiply(tmpCt, vConv, ginvCInpNTT)

			ct.CopyInto(tmpCt, 0, 2*j)
		}
	}
}
