// Package poly implements fixed-shape polynomial matrices (Regev and
// GSW ciphertexts are small matrices of ring elements) in both raw
// (coefficient-domain) and NTT-domain representations, plus the
// gadget-decomposition and matrix-multiplication operations the PIR core
// composes them with.
//
// The flat row-major Data layout mirrors the field layout implied by
// original_source/spiral-rs/src/server.rs's PolyMatrixNTT/PolyMatrixRaw
// (`v[i].data[idx]` indexed by row, CRT residue, and coefficient), and
// the gadget structure follows core/rlwe/gadgetciphertext.go's shape (a
// GadgetCiphertext is conceptually a stack of Regev-like column pairs,
// exactly what PolyMatrixNTT's 2-row/2*t_gsw-col shape represents for
// GSW ciphertexts here).
package poly

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/ring"
)

// Context bundles a parameter set with its backing ring arithmetic, and
// is the factory for every matrix type in this package.
type Context struct {
	Params *params.Params
	Ring   *ring.Ring
}

// NewContext builds the NTT tables implied by p and returns a Context.
func NewContext(p *params.Params) (*Context, error) {
	r, err := ring.NewRing(p.N, p.Moduli)
	if err != nil {
		return nil, fmt.Errorf("poly: %w", err)
	}
	return &Context{Params: p, Ring: r}, nil
}

// MatrixRaw is an r x c matrix of degree-N polynomials in coefficient
// form, each coefficient reduced modulo the full ciphertext modulus Q.
type MatrixRaw struct {
	ctx        *Context
	Rows, Cols int
	Data       []uint64
}

// MatrixNTT is an r x c matrix of degree-N polynomials in per-CRT
// NTT-domain form.
type MatrixNTT struct {
	ctx        *Context
	Rows, Cols int
	Data       []uint64
}

// NewRaw allocates a zeroed rows x cols raw matrix.
func (c *Context) NewRaw(rows, cols int) *MatrixRaw {
	return &MatrixRaw{ctx: c, Rows: rows, Cols: cols, Data: make([]uint64, rows*cols*c.Params.N)}
}

// NewNTT allocates a zeroed rows x cols NTT-domain matrix.
func (c *Context) NewNTT(rows, cols int) *MatrixNTT {
	n := c.Params.N
	crt := c.Params.CRTCount
	return &MatrixNTT{ctx: c, Rows: rows, Cols: cols, Data: make([]uint64, rows*cols*crt*n)}
}

// Poly returns the coefficient slice (length N) for entry (row, col).
func (m *MatrixRaw) Poly(row, col int) []uint64 {
	n := m.ctx.Params.N
	off := (row*m.Cols + col) * n
	return m.Data[off : off+n]
}

// Poly returns the NTT-domain slice (length CRTCount*N, residues
// back-to-back) for entry (row, col).
func (m *MatrixNTT) Poly(row, col int) []uint64 {
	crt := m.ctx.Params.CRTCount
	n := m.ctx.Params.N
	off := (row*m.Cols + col) * crt * n
	return m.Data[off : off+crt*n]
}

// Residue returns the single-CRT-residue coefficient slice (length N)
// for entry (row, col), residue crtIdx.
func (m *MatrixNTT) Residue(row, col, crtIdx int) []uint64 {
	n := m.ctx.Params.N
	p := m.Poly(row, col)
	return p[crtIdx*n : (crtIdx+1)*n]
}

// CopyInto copies src (whose shape must fit within m starting at
// rowOffset, colOffset) entrywise into m. This is the Go analogue of the
// Rust PolyMatrixNTT::copy_into used throughout regev_to_gsw.
func (m *MatrixNTT) CopyInto(src *MatrixNTT, rowOffset, colOffset int) {
	for r := 0; r < src.Rows; r++ {
		for cIdx := 0; cIdx < src.Cols; cIdx++ {
			copy(m.Poly(rowOffset+r, colOffset+cIdx), src.Poly(r, cIdx))
		}
	}
}

// CopyInto copies src (whose shape must fit within m starting at
// rowOffset, colOffset) entrywise into m. The Raw-matrix counterpart of
// MatrixNTT.CopyInto, used e.g. by pir/dbgen to place a generated item
// into its n x n plaintext grid.
func (m *MatrixRaw) CopyInto(src *MatrixRaw, rowOffset, colOffset int) {
	for r := 0; r < src.Rows; r++ {
		for cIdx := 0; cIdx < src.Cols; cIdx++ {
			copy(m.Poly(rowOffset+r, colOffset+cIdx), src.Poly(r, cIdx))
		}
	}
}

// Clone returns an independent copy of m, sharing no backing storage.
func (m *MatrixRaw) Clone() *MatrixRaw {
	return &MatrixRaw{ctx: m.ctx, Rows: m.Rows, Cols: m.Cols, Data: slices.Clone(m.Data)}
}

// Clone returns an independent copy of m, sharing no backing storage.
func (m *MatrixNTT) Clone() *MatrixNTT {
	return &MatrixNTT{ctx: m.ctx, Rows: m.Rows, Cols: m.Cols, Data: slices.Clone(m.Data)}
}

// ToNTT converts a raw matrix into NTT-domain form (full reduction).
func (c *Context) ToNTT(dst *MatrixNTT, src *MatrixRaw) {
	n, crt := c.Params.N, c.Params.CRTCount
	for r := 0; r < src.Rows; r++ {
		for col := 0; col < src.Cols; col++ {
			rows := make([][]uint64, crt)
			out := dst.Poly(r, col)
			for k := 0; k < crt; k++ {
				rows[k] = out[k*n : (k+1)*n]
			}
			c.Ring.ToNTT(rows, src.Poly(r, col))
		}
	}
}

// ToNTTNoReduce converts a raw matrix into NTT-domain form without the
// final Barrett normalization pass (the to_ntt_no_reduce collaborator).
func (c *Context) ToNTTNoReduce(dst *MatrixNTT, src *MatrixRaw) {
	n, crt := c.Params.N, c.Params.CRTCount
	for r := 0; r < src.Rows; r++ {
		for col := 0; col < src.Cols; col++ {
			rows := make([][]uint64, crt)
			out := dst.Poly(r, col)
			for k := 0; k < crt; k++ {
				rows[k] = out[k*n : (k+1)*n]
			}
			c.Ring.ToNTTNoReduce(rows, src.Poly(r, col))
		}
	}
}

// FromNTT converts an NTT-domain matrix back to raw coefficient form.
func (c *Context) FromNTT(dst *MatrixRaw, src *MatrixNTT) {
	n, crt := c.Params.N, c.Params.CRTCount
	for r := 0; r < src.Rows; r++ {
		for col := 0; col < src.Cols; col++ {
			in := src.Poly(r, col)
			rows := make([][]uint64, crt)
			for k := 0; k < crt; k++ {
				rows[k] = in[k*n : (k+1)*n]
			}
			c.Ring.FromNTT(dst.Poly(r, col), rows)
		}
	}
}

// Multiply computes dst = A * B, an NTT-domain matrix product (A.Cols
// must equal B.Rows); each entry's product is the pointwise NTT-domain
// polynomial product summed over the shared dimension, reduced modulo
// the corresponding CRT prime.
func (c *Context) Multiply(dst, a, b *MatrixNTT) {
	if a.Cols != b.Rows {
		panic(fmt.Sprintf("poly: shape mismatch in Multiply: A is %dx%d, B is %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	n, crt := c.Params.N, c.Params.CRTCount
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			out := dst.Poly(i, j)
			for k := range out {
				out[k] = 0
			}
			for k := 0; k < a.Cols; k++ {
				aP := a.Poly(i, k)
				bP := b.Poly(k, j)
				for crtIdx := 0; crtIdx < crt; crtIdx++ {
					mod := c.Ring.ModulusAt(crtIdx)
					base := crtIdx * n
					for z := 0; z < n; z++ {
						prod := ring.BRed(aP[base+z], bP[base+z], mod.Q, mod.BRedConst)
						out[base+z] = ring.BRedAdd(out[base+z]+prod, mod.Q, mod.BRedConst)
					}
				}
			}
		}
	}
}

// ScalarMultiply computes dst = s * A, broadcasting the 1x1 NTT-domain
// scalar polynomial s against every entry of A.
func (c *Context) ScalarMultiply(dst *MatrixNTT, s, a *MatrixNTT) {
	n, crt := c.Params.N, c.Params.CRTCount
	sp := s.Poly(0, 0)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			aP := a.Poly(i, j)
			out := dst.Poly(i, j)
			for crtIdx := 0; crtIdx < crt; crtIdx++ {
				mod := c.Ring.ModulusAt(crtIdx)
				base := crtIdx * n
				for z := 0; z < n; z++ {
					out[base+z] = ring.BRed(aP[base+z], sp[base+z], mod.Q, mod.BRedConst)
				}
			}
		}
	}
}
