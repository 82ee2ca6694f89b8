package qvortex

import "golang.org/x/crypto/sha3"

// sboxSeedLen is the length of the SHAKE-128 seed the table is expanded from.
const sboxSeedLen = 32

// defaultSeedByte fills the seed when no key is supplied.
const defaultSeedByte = 0xCC

// deriveSBox builds the 256-entry substitution table for key. The table is
// always a permutation of 0..255: the identity table is shuffled with a
// Fisher-Yates pass driven by a SHAKE-128 stream. The stream is seeded with
// SHAKE128(key, 32) for a non-empty key and with a fixed 32-byte constant
// otherwise, so a nil key and an empty key derive the same table.
func deriveSBox(key []byte) [256]byte {
	var seed [sboxSeedLen]byte
	if len(key) > 0 {
		x := sha3.NewShake128()
		x.Write(key)
		x.Read(seed[:])
	} else {
		for i := range seed {
			seed[i] = defaultSeedByte
		}
	}

	x := sha3.NewShake128()
	x.Write(seed[:])

	var sbox [256]byte
	for i := range sbox {
		sbox[i] = byte(i)
	}
	var r [1]byte
	for i := len(sbox) - 1; i > 0; i-- {
		x.Read(r[:])
		j := int(r[0]) % (i + 1)
		sbox[i], sbox[j] = sbox[j], sbox[i]
	}
	return sbox
}
