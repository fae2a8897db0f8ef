package params_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/params"
)

func validLiteral() params.Literal {
	return params.Literal{
		Moduli:    []uint64{7681, 12289},
		N:         256,
		TExpLeft:  4,
		TExpRight: 4,
		TConv:     4,
		TGSW:      4,
		DBDim1:    6,
		DBDim2:    2,
		PtModulus: 16,
	}
}

func TestNewDerivesScaleKAndDims(t *testing.T) {
	p, err := params.New(validLiteral())
	require.NoError(t, err)

	require.Equal(t, 2, p.CRTCount)
	require.Equal(t, 64, p.Dim0())
	require.Equal(t, 4, p.NumPer())
	require.Equal(t, p.Q.Uint64()/16, p.ScaleK)
}

func TestNewRejectsBadModulus(t *testing.T) {
	lit := validLiteral()
	lit.Moduli = []uint64{1 << 28}
	_, err := params.New(lit)
	require.Error(t, err)
}

func TestNewRejectsNonPowerOfTwoN(t *testing.T) {
	lit := validLiteral()
	lit.N = 300
	_, err := params.New(lit)
	require.Error(t, err)
}

func TestGAccountsForRightBranchDepth(t *testing.T) {
	lit := validLiteral()
	lit.TGSW = 1
	p, err := params.New(lit)
	require.NoError(t, err)

	// db_dim_2=2, t_gsw=1 => max_bits_to_gen_right=2, one extra round.
	require.Equal(t, lit.DBDim1+1, p.G)
	require.Equal(t, lit.DBDim1, p.StopRound)
}

func TestBitsPerCoversFullModulus(t *testing.T) {
	p, err := params.New(validLiteral())
	require.NoError(t, err)

	bitsPer := p.BitsPer(p.TConv)
	require.GreaterOrEqual(t, bitsPer*p.TConv, p.Q.BitLen())
}
