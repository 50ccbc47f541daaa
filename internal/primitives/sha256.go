// Package primitives implements the cryptographic building blocks shared by
// the host (this package) and the OpenCL device kernels: SHA-256, SHA-512,
// HMAC-SHA-512, PBKDF2-HMAC-SHA-512, Blake2b-256 and Base58. Every function
// here is a pure, allocation-light transform so its behavior is easy to
// reproduce limb-for-limb on a GPU with no 64-bit-clean standard library.
package primitives

import "encoding/binary"

// sha256InitialHash holds the first 32 bits of the fractional parts of the
// square roots of the first 8 prime numbers, per FIPS 180-4 section 5.3.3.
var sha256InitialHash = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// sha256RoundConstants holds the first 32 bits of the fractional parts of
// the cube roots of the first 64 prime numbers, per FIPS 180-4 section 4.2.2.
var sha256RoundConstants = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr32(x uint32, n uint) uint32 { return x>>n | x<<(32-n) }

// sha256Pad appends the FIPS 180-4 padding (a single 0x80 byte, zero bytes,
// then the 64-bit big-endian bit length) so the result is a multiple of the
// 64-byte block size.
func sha256Pad(data []byte) []byte {
	bitLen := uint64(len(data)) * 8
	padded := append([]byte{}, data...)
	padded = append(padded, 0x80)
	for len(padded)%64 != 56 {
		padded = append(padded, 0x00)
	}
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	return append(padded, lenBytes[:]...)
}

// sha256Compress runs one round of the SHA-256 compression function over a
// single 64-byte block, mutating state in place.
func sha256Compress(state *[8]uint32, block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr32(w[i-15], 7) ^ rotr32(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr32(w[i-2], 17) ^ rotr32(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for i := 0; i < 64; i++ {
		s1 := rotr32(e, 6) ^ rotr32(e, 11) ^ rotr32(e, 25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + sha256RoundConstants[i] + w[i]
		s0 := rotr32(a, 2) ^ rotr32(a, 13) ^ rotr32(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
}

// SHA256 computes the FIPS 180-4 SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	state := sha256InitialHash
	padded := sha256Pad(data)
	for i := 0; i < len(padded); i += 64 {
		sha256Compress(&state, padded[i:i+64])
	}
	var out [32]byte
	for i, s := range state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}
