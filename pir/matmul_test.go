package pir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/internal/testclient"
	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/pir"
	"github.com/spiralpir/core/pir/dbgen"
	"github.com/spiralpir/core/poly"
)

func matmulTestParams(t *testing.T) *params.Params {
	t.Helper()
	p, err := params.New(params.Literal{
		Moduli:    []uint64{7681, 12289},
		N:         256,
		TExpLeft:  4,
		TExpRight: 4,
		TConv:     4,
		TGSW:      4,
		DBDim1:    6,
		DBDim2:    2,
		PtModulus: 16,
	})
	require.NoError(t, err)
	return p
}

// TestMultiplyDatabaseIsCorrect covers scenario S4: a one-hot Regev
// selection vector multiplied against a freshly generated database must,
// once decrypted and rescaled, reproduce the targeted item's coefficients
// exactly.
func TestMultiplyDatabaseIsCorrect(t *testing.T) {
	p := matmulTestParams(t)
	ctx, err := poly.NewContext(p)
	require.NoError(t, err)

	dim0 := p.Dim0()
	numPer := p.NumPer()
	require.GreaterOrEqual(t, dim0*2, params.MaxSummed)

	const targetIdx = 37
	targetIdxDim0 := targetIdx / numPer
	targetIdxNumPer := targetIdx % numPer

	client := testclient.New(ctx)

	result := dbgen.GenerateRandomDatabaseAndItem(ctx, targetIdx)

	vReg := make([]*poly.MatrixNTT, dim0)
	for k := 0; k < dim0; k++ {
		val := uint64(0)
		if k == targetIdxDim0 {
			val = p.ScaleK
		}
		raw := ctx.NewRaw(1, 1)
		raw.Poly(0, 0)[0] = val
		nttM := ctx.NewNTT(1, 1)
		ctx.ToNTT(nttM, raw)
		vReg[k] = client.EncryptRegev(nttM)
	}

	vRegReoriented := make([]uint64, dim0*2*p.N)
	pir.ReorientRegCiphertexts(ctx, vRegReoriented, vReg, dim0)

	out := make([]*poly.MatrixNTT, numPer)
	for i := range out {
		out[i] = ctx.NewNTT(2, 1)
	}

	pir.MultiplyDatabase(ctx, out, result.DB, vRegReoriented, dim0, numPer)

	dec := client.DecryptRegev(out[targetIdxNumPer])
	qU := p.Q.Uint64()
	corrItem := result.Item.Poly(0, 0)

	for z := 0; z < p.N; z++ {
		got := pir.Rescale(dec.Poly(0, 0)[z], qU, p.PtModulus)
		require.Equalf(t, corrItem[z], got, "coefficient %d", z)
	}
}
