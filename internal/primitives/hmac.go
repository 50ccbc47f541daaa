package primitives

// hmacSHA512BlockSize is the SHA-512 block size used for HMAC key padding,
// per RFC 2104.
const hmacSHA512BlockSize = 128

// HMACSHA512 computes HMAC-SHA-512(key, data) per RFC 2104. Keys longer
// than the block size are hashed first; shorter keys are zero-padded on
// the right.
func HMACSHA512(key, data []byte) [64]byte {
	blockKey := make([]byte, hmacSHA512BlockSize)
	if len(key) > hmacSHA512BlockSize {
		h := SHA512(key)
		copy(blockKey, h[:])
	} else {
		copy(blockKey, key)
	}

	ipad := make([]byte, hmacSHA512BlockSize)
	opad := make([]byte, hmacSHA512BlockSize)
	for i := 0; i < hmacSHA512BlockSize; i++ {
		ipad[i] = blockKey[i] ^ 0x36
		opad[i] = blockKey[i] ^ 0x5c
	}

	inner := SHA512(append(ipad, data...))
	outer := SHA512(append(opad, inner[:]...))
	return outer
}
