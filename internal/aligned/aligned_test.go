package aligned_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiralpir/core/internal/aligned"
)

// TestBufferIsAlignedAndZeroed covers scenario S5: a freshly constructed
// buffer is 64-byte aligned and reads back all zeros.
func TestBufferIsAlignedAndZeroed(t *testing.T) {
	b := aligned.New(1000)
	require.EqualValues(t, 1000, b.Len())
	require.Zero(t, b.Addr()%64)

	for _, v := range b.Slice() {
		require.Zero(t, v)
	}
}

func TestBufferMutSliceWritesThroughSlice(t *testing.T) {
	b := aligned.New(8)
	m := b.MutSlice()
	for i := range m {
		m[i] = uint64(i + 1)
	}
	for i, v := range b.Slice() {
		require.EqualValues(t, i+1, v)
	}
}
