// Package qvortex implements the Qvortex keyed cryptographic hash function.
//
// Qvortex hashes input in 64-byte blocks through a byte substitution table
// and an ARX (add-rotate-xor) mixing core over eight 64-bit state words,
// producing a 64-byte digest. The substitution table is derived with
// SHAKE-128 from an optional key of any length, so hashers with different
// keys compute unrelated digests; with no key a fixed default table is used.
//
// Two entry points are provided: the one-shot Sum/SumKeyed functions, and a
// streaming Hasher that accepts input in arbitrary chunks and produces the
// same digest as the one-shot call on the concatenated input. A Hasher must
// not be used from multiple goroutines at once; distinct Hashers share no
// state and may be used concurrently.
package qvortex

import "errors"

const (
	// DigestSize is the length of a Qvortex digest in bytes.
	DigestSize = 64
	// BlockSize is the length of an input block in bytes.
	BlockSize = 64

	// Version identifies this implementation. Constant for a given build,
	// intended for diagnostics only.
	Version = "1.0.0"

	stateWords = 8
)

// ErrFinalized is returned by Write and Final on a Hasher whose digest has
// already been taken with Final.
var ErrFinalized = errors.New("qvortex: hasher already finalized")

// Sum computes the unkeyed Qvortex digest of data.
func Sum(data []byte) [DigestSize]byte {
	return SumKeyed(data, nil)
}

// SumKeyed computes the Qvortex digest of data under key. A nil or empty
// key is identical to unkeyed hashing; any other key length is accepted.
func SumKeyed(data, key []byte) [DigestSize]byte {
	h := NewKeyed(key)
	h.Write(data)
	return h.checksum()
}

// Hasher is a streaming Qvortex hasher. It implements hash.Hash.
// The zero value is not usable; construct Hashers with New or NewKeyed.
//
// Field order and widths mirror the portable context layout:
// eight 64-bit state words, the 256-byte substitution table, the 64-byte
// block buffer, the buffer fill length (size type), and the 64-bit total
// input length. The finalized flag is bookkeeping on top of that layout.
type Hasher struct {
	state    [stateWords]uint64
	sbox     [256]byte
	buf      [BlockSize]byte
	bufLen   int
	totalLen uint64

	finalized bool
}

// New returns an unkeyed Hasher.
func New() *Hasher {
	return NewKeyed(nil)
}

// NewKeyed returns a Hasher whose substitution table is derived from key.
// A nil or empty key yields the same Hasher as New.
func NewKeyed(key []byte) *Hasher {
	h := new(Hasher)
	h.sbox = deriveSBox(key)
	h.Reset()
	return h
}

// Reset restores the Hasher to its initial state. The substitution table
// derived at construction is kept, so a keyed Hasher stays keyed without
// the key itself being retained.
func (h *Hasher) Reset() {
	h.state = iv
	h.buf = [BlockSize]byte{}
	h.bufLen = 0
	h.totalLen = 0
	h.finalized = false
}

// Size returns DigestSize.
func (h *Hasher) Size() int { return DigestSize }

// BlockSize returns BlockSize.
func (h *Hasher) BlockSize() int { return BlockSize }

// Write absorbs p into the hasher. It never fails on live hashers; after
// Final it returns ErrFinalized. Writing an empty slice is a no-op.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		return 0, ErrFinalized
	}
	written := len(p)
	h.totalLen += uint64(written)

	if h.bufLen > 0 {
		n := copy(h.buf[h.bufLen:], p)
		h.bufLen += n
		p = p[n:]
		if h.bufLen == BlockSize {
			h.processBlock(h.buf[:])
			h.bufLen = 0
		}
	}

	for len(p) >= BlockSize {
		h.processBlock(p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		h.bufLen = copy(h.buf[:], p)
	}
	return written, nil
}

// Sum appends the current digest to b and returns the new slice. The hasher
// state is not modified; more data may be written afterwards. Sum panics on
// a finalized Hasher.
func (h *Hasher) Sum(b []byte) []byte {
	if h.finalized {
		panic("qvortex: Sum of finalized hasher")
	}
	d := *h
	out := d.checksum()
	return append(b, out[:]...)
}

// Final returns the digest and consumes the Hasher: the state words, block
// buffer and counters are wiped, and any further Write or Final returns
// ErrFinalized. Reset makes the Hasher usable again.
func (h *Hasher) Final() ([DigestSize]byte, error) {
	if h.finalized {
		return [DigestSize]byte{}, ErrFinalized
	}
	out := h.checksum()
	h.state = [stateWords]uint64{}
	h.buf = [BlockSize]byte{}
	h.bufLen = 0
	h.totalLen = 0
	h.finalized = true
	return out, nil
}
