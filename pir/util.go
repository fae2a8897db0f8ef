// Package pir implements the three query-answering hot operations of a
// Spiral-style single-server PIR core: coefficient expansion (Stage A,
// Expand), Regev-to-GSW conversion (Stage B, ConvertToGSW), and the
// database inner product (Stage C, MultiplyDatabase).
//
// Grounded throughout on original_source/spiral-rs/src/server.rs (see
// DESIGN.md's Open Question entries for the places that source resolves
// an ambiguity).
package pir

import "math/big"

// CalcIndex computes a row-major flat index from a set of per-dimension
// indices and their extents, the collaborator named calc_index.
func CalcIndex(indices, extents []int) int {
	idx := indices[0]
	for i := 1; i < len(indices); i++ {
		idx = idx*extents[i] + indices[i]
	}
	return idx
}

// RecenterMod re-expresses x (given modulo p) as the equivalent centered
// residue modulo q: values in the upper half of [0, p) are mapped to
// their negative representative near q rather than near p. This lets a
// plaintext database value modulo a small p be embedded directly into
// the much larger ciphertext modulus q ready for NTT encoding, the
// collaborator named recenter_mod.
func RecenterMod(x, p, q uint64) uint64 {
	if x >= p/2 {
		return q - (p - x)
	}
	return x
}

// Rescale maps x (given modulo from, read as a centered residue) to the
// nearest value modulo to, rounding to the nearest integer rather than
// down, the collaborator named rescale. Used to recover a
// plaintext-modulus value from a decrypted ciphertext-modulus
// coefficient.
func Rescale(x, from, to uint64) uint64 {
	fromB := new(big.Int).SetUint64(from)
	toB := new(big.Int).SetUint64(to)
	xB := new(big.Int).SetUint64(x)

	half := new(big.Int).Rsh(fromB, 1)
	signed := new(big.Int).Set(xB)
	if xB.Cmp(half) >= 0 {
		signed.Sub(xB, fromB)
	}

	num := new(big.Int).Mul(signed, toB)
	halfFrom := new(big.Int).Rsh(fromB, 1)
	if signed.Sign() >= 0 {
		num.Add(num, halfFrom)
	} else {
		num.Sub(num, halfFrom)
	}

	res := new(big.Int).Quo(num, fromB)
	res.Mod(res, toB)
	return res.Uint64()
}
