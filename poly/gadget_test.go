package poly_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGadgetInvertReconstructsCoefficient(t *testing.T) {
	ctx := testContext(t)
	tDigits := ctx.Params.TConv
	bitsPer := ctx.Params.BitsPer(tDigits)

	src := ctx.NewRaw(2, 1)
	const val = 12345
	src.Poly(0, 0)[0] = val
	src.Poly(1, 0)[0] = val + 1

	dst := ctx.NewRaw(2*tDigits, 1)
	ctx.GadgetInvert(dst, src, tDigits)

	for row := 0; row < 2; row++ {
		var reconstructed uint64
		for digit := 0; digit < tDigits; digit++ {
			reconstructed |= dst.Poly(row*tDigits+digit, 0)[0] << uint(bitsPer*digit)
		}
		require.EqualValues(t, src.Poly(row, 0)[0], reconstructed)
	}
}

func TestGadgetInvertRDimDecomposesOneRowOnly(t *testing.T) {
	ctx := testContext(t)
	tDigits := ctx.Params.TExpLeft
	bitsPer := ctx.Params.BitsPer(tDigits)

	src := ctx.NewRaw(2, 1)
	src.Poly(1, 0)[0] = 999

	dst := ctx.NewRaw(tDigits, 1)
	ctx.GadgetInvertRDim(dst, src, 1, tDigits)

	var reconstructed uint64
	for digit := 0; digit < tDigits; digit++ {
		reconstructed |= dst.Poly(digit, 0)[0] << uint(bitsPer*digit)
	}
	require.EqualValues(t, 999, reconstructed)
}
