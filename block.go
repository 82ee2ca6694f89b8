package qvortex

import (
	"encoding/binary"
	"math/bits"
)

// Rotation constants for the ARX quarter-round.
const (
	rot1 = 32
	rot2 = 24
	rot3 = 16
	rot4 = 63
)

// mixRounds is the number of ARX rounds applied per block.
const mixRounds = 2

// iv is the initial state vector, the eight SHA-512 initialization constants.
var iv = [stateWords]uint64{
	0x6A09E667F3BCC908, 0xBB67AE8584CAA73B, 0x3C6EF372FE94F82B,
	0xA54FF53A5F1D36F1, 0x510E527FADE682D1, 0x9B05688C2B3E6C1F,
	0x1F83D9ABFB41BD6B, 0x5BE0CD19137E2179,
}

// quarterRound mixes four state words in place.
func quarterRound(s *[stateWords]uint64, a, b, c, d int) {
	s[a] += s[b]
	s[d] = bits.RotateLeft64(s[d]^s[a], rot1)
	s[c] += s[d]
	s[b] = bits.RotateLeft64(s[b]^s[c], rot2)
	s[a] += s[b]
	s[d] = bits.RotateLeft64(s[d]^s[a], rot3)
	s[c] += s[d]
	s[b] = bits.RotateLeft64(s[b]^s[c], rot4)
}

// processBlock absorbs one full 64-byte block into the state. It is a pure
// function of (state, sbox, block) and is applied identically to every
// block, including the final padded one.
func (h *Hasher) processBlock(block []byte) {
	// Substitution step, then load eight little-endian message words.
	var sub [BlockSize]byte
	for i, b := range block[:BlockSize] {
		sub[i] = h.sbox[b]
	}
	var m [stateWords]uint64
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(sub[i*8:])
	}

	// Fold the message into a copy of the state, each word rotated by its
	// own top six bits.
	s := h.state
	for i := range s {
		s[i] ^= bits.RotateLeft64(m[i], int(m[i]>>56)&63)
	}

	for r := 0; r < mixRounds; r++ {
		quarterRound(&s, 0, 1, 2, 3)
		quarterRound(&s, 4, 5, 6, 7)
		quarterRound(&s, 0, 5, 2, 7)
		quarterRound(&s, 4, 1, 6, 3)

		// Rotate the state vector one word left between rounds.
		t := s[0]
		copy(s[:stateWords-1], s[1:])
		s[stateWords-1] = t
	}

	// Feed-forward.
	for i := range h.state {
		h.state[i] ^= s[i]
	}
}

// checksum pads and absorbs the trailing partial block, then serializes the
// state. It mutates the receiver; callers that must stay writable operate on
// a copy.
//
// Padding: a 0x80 marker after the buffered bytes, zeroes up to byte 56, and
// the total input length in bits as a little-endian 64-bit value in bytes
// 56..63. When the marker leaves fewer than 8 bytes of room the buffer is
// flushed first and the length goes into a second, otherwise-zero block.
func (h *Hasher) checksum() [DigestSize]byte {
	h.buf[h.bufLen] = 0x80
	n := h.bufLen + 1
	if n > BlockSize-8 {
		for i := n; i < BlockSize; i++ {
			h.buf[i] = 0
		}
		h.processBlock(h.buf[:])
		n = 0
	}
	for i := n; i < BlockSize-8; i++ {
		h.buf[i] = 0
	}
	binary.LittleEndian.PutUint64(h.buf[BlockSize-8:], h.totalLen*8)
	h.processBlock(h.buf[:])

	var out [DigestSize]byte
	for i, w := range h.state {
		binary.LittleEndian.PutUint64(out[i*8:], w)
	}
	return out
}
