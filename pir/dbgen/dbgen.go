// Package dbgen builds a random plaintext database in the packed NTT
// layout pir.MultiplyDatabase expects, for use by tests and benchmarks.
//
// Grounded on original_source/spiral-rs/src/server.rs's
// generate_random_db_and_get_item, a test-side collaborator left as an
// external dependency rather than part of the hot-path package.
package dbgen

import (
	"github.com/spiralpir/core/internal/prng"
	"github.com/spiralpir/core/params"
	"github.com/spiralpir/core/pir"
	"github.com/spiralpir/core/poly"
)

// Result holds the generated database (in pir.MultiplyDatabase's packed
// layout) plus the single item at itemIdx, recovered in raw plaintext
// form for the caller to compare a query response against.
type Result struct {
	// DB is the packed two-residue NTT-form database, length
	// trials * numItems * n, laid out per the DB layout contract
	// (trial, z, i, k in row-major order, i.e. trial acts as
	// an outer repeat dimension of independent db_dim_2 x db_dim_1
	// databases sharing one buffer — the n x n grid of item
	// coordinates below picks out one entry per trial).
	DB []uint64
	// Item is the n x n matrix whose (trial/n, trial%n) entry is the
	// recovered plaintext coefficient vector of the item at ItemIdx,
	// for trial in [0, n*n).
	Item *poly.MatrixRaw
}

// GenerateRandomDatabaseAndItem builds a database of dim0*numPer items,
// each an n*n grid of degree-n plaintext polynomials reduced mod
// params.PtModulus, deterministically seeded (prng.Seeded), and returns
// it alongside the item at itemIdx recovered in plaintext form.
func GenerateRandomDatabaseAndItem(ctx *poly.Context, itemIdx int) *Result {
	p := ctx.Params
	n := p.N
	dim0 := p.Dim0()
	numPer := p.NumPer()
	numItems := dim0 * numPer
	trials := n * n

	rng := prng.Seeded()

	db := make([]uint64, trials*numItems*n)
	item := ctx.NewRaw(n, n)

	dbItem := ctx.NewRaw(1, 1)
	for trial := 0; trial < trials; trial++ {
		for i := 0; i < numItems; i++ {
			ii := i % numPer
			j := i / numPer

			poly1 := dbItem.Poly(0, 0)
			for z := 0; z < n; z++ {
				poly1[z] = rng.Uint64N(p.PtModulus)
			}

			if i == itemIdx {
				item.CopyInto(dbItem, trial/n, trial%n)
			}

			for z := 0; z < n; z++ {
				poly1[z] = pir.RecenterMod(poly1[z], p.PtModulus, uintModulus(p))
			}

			dbItemNTT := ctx.NewNTT(1, 1)
			ctx.ToNTT(dbItemNTT, dbItem)

			res0 := dbItemNTT.Residue(0, 0, 0)
			res1 := dbItemNTT.Residue(0, 0, 1)
			for z := 0; z < n; z++ {
				idx := pir.CalcIndex([]int{trial, z, ii, j}, []int{trials, n, numPer, dim0})
				db[idx] = res0[z] | (res1[z] << params.PackedOffset)
			}
		}
	}

	return &Result{DB: db, Item: item}
}

func uintModulus(p *params.Params) uint64 {
	if !p.Q.IsUint64() {
		panic("dbgen: ciphertext modulus Q does not fit in a uint64")
	}
	return p.Q.Uint64()
}
