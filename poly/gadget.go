package poly

// GadgetInvert decomposes every row of src (an r x 1 raw matrix) into t
// base-2^bitsPer digit polynomials, writing the result into dst, a
// (r*t) x 1 raw matrix: dst.Poly(row*t+digit, 0) holds the digit-th
// least-significant chunk of src.Poly(row, 0)'s coefficients.
//
// This is the standard base-2^k gadget decomposition used by GSW-style
// ciphertexts (the same digit split a GadgetCiphertext's
// BaseTwoDecomposition names), used here by regev-to-GSW conversion's
// full two-row decomposition.
func (c *Context) GadgetInvert(dst, src *MatrixRaw, t int) {
	bitsPer := c.Params.BitsPer(t)
	mask := (uint64(1) << bitsPer) - 1
	for row := 0; row < src.Rows; row++ {
		srcPoly := src.Poly(row, 0)
		for digit := 0; digit < t; digit++ {
			dstPoly := dst.Poly(row*t+digit, 0)
			shift := uint(bitsPer * digit)
			for z, v := range srcPoly {
				dstPoly[z] = (v >> shift) & mask
			}
		}
	}
}

// GadgetInvertRDim decomposes only row `row` of src into t digit
// polynomials written to dst, a t x 1 raw matrix. This is the
// single-row variant coefficient expansion uses (gadget_invert_rdim), as
// opposed to GadgetInvert's full-matrix decomposition used by
// conversion.
func (c *Context) GadgetInvertRDim(dst, src *MatrixRaw, row, t int) {
	bitsPer := c.Params.BitsPer(t)
	mask := (uint64(1) << bitsPer) - 1
	srcPoly := src.Poly(row, 0)
	for digit := 0; digit < t; digit++ {
		dstPoly := dst.Poly(digit, 0)
		shift := uint(bitsPer * digit)
		for z, v := range srcPoly {
			dstPoly[z] = (v >> shift) & mask
		}
	}
}
