package pir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/internal/testclient"
	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/pir"
	"github.com/spiralpir/core/poly"
)

// expansionTestParams mirrors the scenario S1 parameter override: t_gsw is
// pinned to 1 so that g works out to exactly db_dim_1+1 rounds, matching
// the 128-entry V this scenario decrypts in full.
func expansionTestParams(t *testing.T) *params.Params {
	t.Helper()
	p, err := params.New(params.Literal{
		Moduli:    []uint64{7681, 12289},
		N:         256,
		TExpLeft:  4,
		TExpRight: 8,
		TConv:     4,
		TGSW:      1,
		DBDim1:    6,
		DBDim2:    2,
		PtModulus: 16,
	})
	require.NoError(t, err)
	return p
}

func TestCoefficientExpansionIsCorrect(t *testing.T) {
	p := expansionTestParams(t)
	ctx, err := poly.NewContext(p)
	require.NoError(t, err)

	require.Equal(t, 1<<p.G, 1<<(p.DBDim1+1), "test parameters must make g equal db_dim_1+1")

	client := testclient.New(ctx)

	v := make([]*poly.MatrixNTT, 1<<p.G)
	for i := range v {
		v[i] = ctx.NewNTT(2, 1)
	}

	const target = 7
	sigma := ctx.NewRaw(1, 1)
	sigma.Poly(0, 0)[target] = p.ScaleK
	sigmaNTT := ctx.NewNTT(1, 1)
	ctx.ToNTT(sigmaNTT, sigma)

	v[0] = client.EncryptRegev(sigmaNTT)
	testCt := client.EncryptRegev(sigmaNTT)

	wLeft, wRight, neg1 := client.GenExpansionKeys(p.G)

	pir.Expand(ctx, v, p.G, p.StopRound, wLeft, wRight, neg1, p.MaxBitsToGenRight)

	require.EqualValues(t, 0, client.DecodeBit(testCt, p.ScaleK), "control ciphertext must be untouched")

	for i, ct := range v {
		want := uint64(0)
		if i == target {
			want = 1
		}
		require.EqualValuesf(t, want, client.DecodeBit(ct, p.ScaleK), "v[%d]", i)
	}
}
