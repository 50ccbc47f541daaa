package secp256k1

import "math/bits"

// Scalar is an element of Z/nZ, where n is the secp256k1 curve order,
// stored as four 64-bit little-endian limbs. Always kept canonical:
// 0 <= value < n.
type Scalar struct {
	limbs [4]uint64
}

// scalarN is the secp256k1 curve order, little-endian limbs.
var scalarN = [4]uint64{0xBFD25E8CD0364141, 0xBAAEDCE6AF48A03B, 0xFFFFFFFFFFFFFFFE, 0xFFFFFFFFFFFFFFFF}

// ScalarZero is the additive identity.
var ScalarZero = Scalar{}

// ScalarOne is the multiplicative identity.
var ScalarOne = Scalar{limbs: [4]uint64{1, 0, 0, 0}}

func scalarGTE(a, b [4]uint64) bool {
	for i := 3; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return true
}

// ScalarFromBytes parses 32 big-endian bytes into a canonical scalar. It
// returns false if the value is >= n.
func ScalarFromBytes(b []byte) (Scalar, bool) {
	if len(b) != 32 {
		return Scalar{}, false
	}
	var limbs [4]uint64
	for i := 0; i < 4; i++ {
		off := 24 - i*8
		limbs[i] = beUint64(b[off : off+8])
	}
	if scalarGTE(limbs, scalarN) {
		return Scalar{}, false
	}
	return Scalar{limbs: limbs}, true
}

// ToBytes serializes the scalar as 32 big-endian bytes.
func (s Scalar) ToBytes() [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		off := 24 - i*8
		putBEUint64(out[off:off+8], s.limbs[i])
	}
	return out
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.limbs == [4]uint64{}
}

// Equal reports whether s and t denote the same scalar.
func (s Scalar) Equal(t Scalar) bool {
	return s.limbs == t.limbs
}

func scalarAddRaw(a, b [4]uint64) ([4]uint64, uint64) {
	var out [4]uint64
	var carry uint64
	for i := 0; i < 4; i++ {
		out[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return out, carry
}

func scalarSubRaw(a, b [4]uint64) ([4]uint64, uint64) {
	var out [4]uint64
	var borrow uint64
	for i := 0; i < 4; i++ {
		out[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return out, borrow
}

// Add returns s + t mod n.
func (s Scalar) Add(t Scalar) Scalar {
	sum, carry := scalarAddRaw(s.limbs, t.limbs)
	if carry != 0 || scalarGTE(sum, scalarN) {
		sum, _ = scalarSubRaw(sum, scalarN)
	}
	return Scalar{limbs: sum}
}

// Sub returns s - t mod n.
func (s Scalar) Sub(t Scalar) Scalar {
	diff, borrow := scalarSubRaw(s.limbs, t.limbs)
	if borrow != 0 {
		diff, _ = scalarAddRaw(diff, scalarN)
	}
	return Scalar{limbs: diff}
}

// Neg returns -s mod n.
func (s Scalar) Neg() Scalar {
	return ScalarZero.Sub(s)
}

// Mul returns s * t mod n.
//
// Reduction is deliberately the simplest possible correct algorithm: the
// 4x4 schoolbook product is formed as an 8-limb wide value, then reduced
// by scanning its 512 bits from the most significant down to the least,
// doubling an accumulator and conditionally adding one for each set bit
// (binary long division against n, expressed as repeated doubling). This
// is far from the fastest approach, but host and device agree on it
// trivially and scalar multiplication is not in the hot path.
func (s Scalar) Mul(t Scalar) Scalar {
	var wide [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(s.limbs[i], t.limbs[j])
			var c1, c2 uint64
			wide[i+j], c1 = bits.Add64(wide[i+j], lo, 0)
			wide[i+j], c2 = bits.Add64(wide[i+j], carry, 0)
			carry = hi + c1 + c2
		}
		wide[i+4], _ = bits.Add64(wide[i+4], carry, 0)
	}
	return scalarReduceWide(wide)
}

// scalarReduceWide reduces an 8-limb (512-bit) value mod n via
// most-significant-bit-first double-and-conditional-add.
func scalarReduceWide(wide [8]uint64) Scalar {
	rem := ScalarZero
	for limbIdx := 7; limbIdx >= 0; limbIdx-- {
		word := wide[limbIdx]
		for bit := 63; bit >= 0; bit-- {
			rem = rem.Add(rem)
			if (word>>uint(bit))&1 == 1 {
				rem = rem.Add(ScalarOne)
			}
		}
	}
	return rem
}

// Square returns s * s mod n.
func (s Scalar) Square() Scalar {
	return s.Mul(s)
}
