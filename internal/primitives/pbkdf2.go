package primitives

import "encoding/binary"

// hmacSHA512OutputSize is HMAC-SHA-512's output length in bytes (64).
const hmacSHA512OutputSize = 64

// PBKDF2HMACSHA512 derives dkLen bytes from password and salt using
// PBKDF2 with HMAC-SHA-512 as the pseudorandom function, per RFC 8018.
// BIP39 always calls this with iterations = 2048.
func PBKDF2HMACSHA512(password, salt []byte, iterations, dkLen int) []byte {
	numBlocks := (dkLen + hmacSHA512OutputSize - 1) / hmacSHA512OutputSize
	derived := make([]byte, 0, numBlocks*hmacSHA512OutputSize)

	for blockIdx := 1; blockIdx <= numBlocks; blockIdx++ {
		var blockNum [4]byte
		binary.BigEndian.PutUint32(blockNum[:], uint32(blockIdx))

		u := HMACSHA512(password, append(append([]byte{}, salt...), blockNum[:]...))
		t := u

		for iter := 1; iter < iterations; iter++ {
			u = HMACSHA512(password, u[:])
			for i := range t {
				t[i] ^= u[i]
			}
		}

		derived = append(derived, t[:]...)
	}

	return derived[:dkLen]
}
