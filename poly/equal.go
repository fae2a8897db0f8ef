package poly

import (
	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"
)

// Equal reports whether two raw matrices have the same shape and
// coefficients. On mismatch, Diff returns a human-readable report, the
// same pattern core/rlwe's element/gadget-ciphertext types use go-cmp
// for in their own Equal methods.
func (m *MatrixRaw) Equal(other *MatrixRaw) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols && slices.Equal(m.Data, other.Data)
}

// Diff returns a go-cmp textual diff between m and other's coefficient
// data, for use in test failure messages.
func (m *MatrixRaw) Diff(other *MatrixRaw) string {
	return cmp.Diff(m.Data, other.Data)
}

// Equal reports whether two NTT-domain matrices have the same shape and
// coefficients.
func (m *MatrixNTT) Equal(other *MatrixNTT) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols && cmp.Equal(m.Data, other.Data)
}

// Diff returns a go-cmp textual diff between m and other's coefficient
// data.
func (m *MatrixNTT) Diff(other *MatrixNTT) string {
	return cmp.Diff(m.Data, other.Data)
}
