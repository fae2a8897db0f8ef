// Package aligned provides a safe, owned, 64-byte-aligned buffer of
// uint64 words — the Go analogue of the Rust AlignedMemory64 type
// (original_source/lib/spiral-rs/src/aligned_memory.rs): the unsafe
// raw-pointer bookkeeping needed to guarantee the alignment is confined
// to this one file, behind a safe Slice()/MutSlice() borrow API. Callers
// needing raw pointer access for a SIMD inner loop (a future AVX2 Stage
// C path) do so explicitly and locally, not through this type.
package aligned

import "unsafe"

// simdAlign is the alignment guarantee (bytes): enough for AVX2 (32) and
// leaves room to spare for AVX-512 (64), matching the Rust original's
// ALIGN_SIMD constant.
const simdAlign = 64

// Buffer is an owned slice of n uint64 words whose first element is
// guaranteed to sit at an address that is a multiple of 64 bytes.
//
// A Buffer has value semantics for sharing: once built it is safe to
// read concurrently from multiple goroutines (Slice), and ownership can
// be handed to a single goroutine for exclusive mutation (MutSlice).
// There is no separate Drop step — the backing array is released by the
// garbage collector once the Buffer becomes unreachable; callers simply
// let the Buffer go out of scope.
type Buffer struct {
	raw   []uint64 // over-allocated backing storage
	data  []uint64 // the aligned, correctly-sized view into raw
}

// New allocates a zeroed Buffer of n words, 64-byte aligned.
func New(n int) *Buffer {
	// Over-allocate by up to simdAlign/8 words so that an aligned
	// sub-slice of length n is guaranteed to exist within raw.
	extra := simdAlign / 8
	raw := make([]uint64, n+extra)

	addr := uintptr(unsafe.Pointer(&raw[0]))
	misalign := addr % simdAlign
	var offset int
	if misalign != 0 {
		offset = int((simdAlign - misalign) / 8)
	}

	return &Buffer{raw: raw, data: raw[offset : offset+n]}
}

// Len returns the number of words in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Slice returns a read-only, 64-byte-aligned view of the buffer's
// words. Safe to call concurrently from multiple goroutines as long as
// no goroutine holds a concurrent MutSlice.
func (b *Buffer) Slice() []uint64 { return b.data }

// MutSlice returns a mutable, 64-byte-aligned view of the buffer's
// words. Callers must ensure exclusive access while writing through it.
func (b *Buffer) MutSlice() []uint64 { return b.data }

// Addr returns the address of the first word, for alignment assertions
// in tests.
func (b *Buffer) Addr() uintptr {
	return uintptr(unsafe.Pointer(&b.data[0]))
}
