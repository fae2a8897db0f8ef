// Package prng implements the deterministic, seedable random source the
// PIR core's test-side collaborators need: generating the test database
// (pir/dbgen) and, in internal/testclient, generating keys and
// ciphertexts for correctness test scenarios.
//
// Grounded on dbfv/collective_CRS.go's PRNG, which drives a blake2b hash
// state with a clock counter to produce a reproducible keyed byte
// stream; this is the get_seeded_rng collaborator.
package prng

import (
	"encoding/binary"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a deterministic byte stream keyed by an initial seed, suitable
// for reproducible tests (and nothing else — it carries no claim of
// cryptographic unpredictability beyond blake2b's own properties).
type PRNG struct {
	clock uint64
	seed  []byte
	h     hash.Hash
}

// New creates a PRNG seeded with seed. A nil seed is equivalent to an
// empty seed.
func New(seed []byte) *PRNG {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err) // blake2b.New512(nil) cannot fail
	}
	p := &PRNG{h: h}
	p.Seed(seed)
	return p
}

// Seeded returns the PRNG used by the test-side database generator and
// test client key generation (get_seeded_rng), seeded with a fixed,
// non-secret value so that test runs are reproducible.
func Seeded() *PRNG {
	return New([]byte("spiralpir-deterministic-test-seed"))
}

// Seed resets the PRNG's clock and hash state, then mixes in seed.
func (p *PRNG) Seed(seed []byte) {
	p.clock = 0
	p.seed = append([]byte(nil), seed...)
	p.h.Reset()
	p.h.Write(p.seed)
}

// Read fills buf with PRNG output, implementing io.Reader.
func (p *PRNG) Read(buf []byte) (int, error) {
	written := 0
	for written < len(buf) {
		var clockBytes [8]byte
		binary.LittleEndian.PutUint64(clockBytes[:], p.clock)
		p.clock++

		p.h.Reset()
		p.h.Write(p.seed)
		p.h.Write(clockBytes[:])
		block := p.h.Sum(nil)

		n := copy(buf[written:], block)
		written += n
	}
	return written, nil
}

var _ io.Reader = (*PRNG)(nil)

// Uint64 returns the next pseudo-random 64-bit word.
func (p *PRNG) Uint64() uint64 {
	var buf [8]byte
	_, _ = p.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint64N returns a pseudo-random value in [0, n) via rejection
// sampling against the smallest power-of-two bound covering n.
func (p *PRNG) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("prng: Uint64N called with n=0")
	}
	mask := uint64(1)
	for mask < n {
		mask <<= 1
	}
	mask--
	for {
		v := p.Uint64() & mask
		if v < n {
			return v
		}
	}
}
