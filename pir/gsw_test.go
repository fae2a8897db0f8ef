package pir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/internal/testclient"
	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/pir"
	"github.com/spiralpir/core/poly"
)

func conversionTestParams(t *testing.T) *params.Params {
	t.Helper()
	p, err := params.New(params.Literal{
		Moduli:    []uint64{7681, 12289},
		N:         256,
		TExpLeft:  4,
		TExpRight: 4,
		TConv:     4,
		TGSW:      4,
		DBDim1:    1,
		DBDim2:    1,
		PtModulus: 16,
	})
	require.NoError(t, err)
	return p
}

// TestRegevToGSWIsCorrect covers scenarios S2 and S3: a t_gsw-digit chain
// of Regev ciphertexts encoding m*2^(bits_per*j), converted through a
// freshly generated conversion key, must GSW-decode to m.
func TestRegevToGSWIsCorrect(t *testing.T) {
	p := conversionTestParams(t)
	ctx, err := poly.NewContext(p)
	require.NoError(t, err)

	client := testclient.New(ctx)
	vConv := client.GenConversionKey(p.TConv)

	bitsPer := p.BitsPer(p.TGSW)

	encConstant := func(val uint64) *poly.MatrixNTT {
		raw := ctx.NewRaw(1, 1)
		raw.Poly(0, 0)[0] = val
		nttM := ctx.NewNTT(1, 1)
		ctx.ToNTT(nttM, raw)
		return client.EncryptRegev(nttM)
	}

	vInp1 := make([]*poly.MatrixNTT, p.TGSW)
	vInp0 := make([]*poly.MatrixNTT, p.TGSW)
	for j := 0; j < p.TGSW; j++ {
		vInp1[j] = encConstant(uint64(1) << uint(bitsPer*j))
		vInp0[j] = encConstant(0)
	}

	gOut := []*poly.MatrixNTT{ctx.NewNTT(2, 2*p.TGSW)}

	pir.ConvertToGSW(ctx, gOut, vInp1, vConv, 1, 0)
	require.EqualValues(t, 1, client.DecodeGSWBit(gOut[0], p.TGSW), "m=1 must GSW-decode to 1")

	pir.ConvertToGSW(ctx, gOut, vInp0, vConv, 1, 0)
	require.EqualValues(t, 0, client.DecodeGSWBit(gOut[0], p.TGSW), "m=0 must GSW-decode to 0")
}
