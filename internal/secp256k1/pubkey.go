package secp256k1

// CompressedPubKey is a 33-byte SEC1 compressed public key: a parity
// prefix byte (0x02 for even y, 0x03 for odd y) followed by the
// 32-byte big-endian x coordinate.
type CompressedPubKey [33]byte

// CompressPoint encodes p's affine form as a compressed public key. It
// returns false for the point at infinity, which has no valid encoding.
func CompressPoint(p Point) (CompressedPubKey, bool) {
	x, y, ok := p.ToAffine()
	if !ok {
		return CompressedPubKey{}, false
	}
	var out CompressedPubKey
	if y.IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	xBytes := x.ToBytes()
	copy(out[1:], xBytes[:])
	return out, true
}

// PubKeyFromPrivateKey derives the compressed public key for a private
// scalar k by computing k*G. Returns false if k is zero, which has no
// corresponding public key.
func PubKeyFromPrivateKey(k Scalar) (CompressedPubKey, bool) {
	if k.IsZero() {
		return CompressedPubKey{}, false
	}
	return CompressPoint(G.Mul(k))
}
