package poly_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/poly"
)

func testContext(t *testing.T) *poly.Context {
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
	ctx, err := poly.NewContext(p)
	require.NoError(t, err)
	return ctx
}

func TestToNTTFromNTTRoundTrips(t *testing.T) {
	ctx := testContext(t)
	n := ctx.Params.N

	raw := ctx.NewRaw(1, 1)
	for z := 0; z < n; z++ {
		raw.Poly(0, 0)[z] = uint64(z * 3 % 97)
	}

	nttM := ctx.NewNTT(1, 1)
	ctx.ToNTT(nttM, raw)

	back := ctx.NewRaw(1, 1)
	ctx.FromNTT(back, nttM)

	require.True(t, raw.Equal(back), raw.Diff(back))
}

func TestScalarMultiplyByOneIsIdentity(t *testing.T) {
	ctx := testContext(t)
	n := ctx.Params.N

	raw := ctx.NewRaw(1, 1)
	for z := 0; z < n; z++ {
		raw.Poly(0, 0)[z] = uint64(z + 1)
	}
	a := ctx.NewNTT(1, 1)
	ctx.ToNTT(a, raw)

	oneRaw := ctx.NewRaw(1, 1)
	oneRaw.Poly(0, 0)[0] = 1
	one := ctx.NewNTT(1, 1)
	ctx.ToNTT(one, oneRaw)

	out := ctx.NewNTT(1, 1)
	ctx.ScalarMultiply(out, one, a)

	// NTT-form words may lie anywhere in [0, 2q), so compare in raw form.
	outRaw := ctx.NewRaw(1, 1)
	ctx.FromNTT(outRaw, out)
	require.True(t, raw.Equal(outRaw), raw.Diff(outRaw))
}

func TestMultiplySumsOverSharedDimension(t *testing.T) {
	ctx := testContext(t)

	mkConst := func(val uint64) *poly.MatrixNTT {
		raw := ctx.NewRaw(1, 1)
		raw.Poly(0, 0)[0] = val
		m := ctx.NewNTT(1, 1)
		ctx.ToNTT(m, raw)
		return m
	}

	a := ctx.NewNTT(1, 2)
	copy(a.Poly(0, 0), mkConst(2).Poly(0, 0))
	copy(a.Poly(0, 1), mkConst(3).Poly(0, 0))

	b := ctx.NewNTT(2, 1)
	copy(b.Poly(0, 0), mkConst(5).Poly(0, 0))
	copy(b.Poly(1, 0), mkConst(7).Poly(0, 0))

	out := ctx.NewNTT(1, 1)
	ctx.Multiply(out, a, b)

	outRaw := ctx.NewRaw(1, 1)
	ctx.FromNTT(outRaw, out)

	// 2*5 + 3*7 = 31, at the constant (degree-zero) coefficient only.
	require.EqualValues(t, 31, outRaw.Poly(0, 0)[0])
	for z := 1; z < ctx.Params.N; z++ {
		require.EqualValuesf(t, 0, outRaw.Poly(0, 0)[z], "coefficient %d", z)
	}
}

func TestCloneIsIndependentCopy(t *testing.T) {
	ctx := testContext(t)

	raw := ctx.NewRaw(1, 1)
	raw.Poly(0, 0)[0] = 7

	clone := raw.Clone()
	require.True(t, raw.Equal(clone))

	clone.Poly(0, 0)[0] = 8
	require.False(t, raw.Equal(clone))
	require.EqualValues(t, 7, raw.Poly(0, 0)[0])
}

func TestCopyIntoPlacesSubmatrix(t *testing.T) {
	ctx := testContext(t)

	dst := ctx.NewRaw(2, 2)
	src := ctx.NewRaw(1, 1)
	src.Poly(0, 0)[0] = 42

	dst.CopyInto(src, 1, 1)

	require.EqualValues(t, 42, dst.Poly(1, 1)[0])
	require.EqualValues(t, 0, dst.Poly(0, 0)[0])
}
