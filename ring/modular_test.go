package ring_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/ring"
)

func TestBRedAddMatchesPlainMod(t *testing.T) {
	q := uint64(12289)
	mod := ring.NewModulus(q)

	for _, x := range []uint64{0, 1, q - 1, q, q + 1, 1 << 40, ^uint64(0)} {
		require.EqualValues(t, x%q, ring.BRedAdd(x, q, mod.BRedConst))
	}
}

func TestBRedMatchesBigIntProduct(t *testing.T) {
	q := uint64(7681)
	mod := ring.NewModulus(q)
	bq := new(big.Int).SetUint64(q)

	cases := [][2]uint64{{3, 5}, {q - 1, q - 1}, {1 << 27, 1 << 27}, {0, 12345}}
	for _, c := range cases {
		want := new(big.Int).Mul(new(big.Int).SetUint64(c[0]), new(big.Int).SetUint64(c[1]))
		want.Mod(want, bq)
		got := ring.BRed(c[0], c[1], q, mod.BRedConst)
		require.EqualValues(t, want.Uint64(), got)
	}
}
