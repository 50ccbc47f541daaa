package secp256k1

// Point is a secp256k1 curve point in Jacobian coordinates (X, Y, Z),
// representing the affine point (X/Z^2, Y/Z^3). The point at infinity is
// represented by Z == 0. Jacobian coordinates let Add and Double avoid a
// field inversion per step; only ToAffine pays for one.
type Point struct {
	X, Y, Z FieldElement
}

// curveB is the secp256k1 curve equation constant: y^2 = x^3 + 7.
var curveB = FieldElement{limbs: [4]uint64{7, 0, 0, 0}}

// PointInfinity is the group identity.
var PointInfinity = Point{X: FieldOne, Y: FieldOne, Z: FieldZero}

// G is the secp256k1 base point, in Jacobian form with Z = 1.
var G = Point{
	X: FieldFromLimbs([4]uint64{0x59F2815B16F81798, 0x029BFCDB2DCE28D9, 0x55A06295CE870B07, 0x79BE667EF9DCBBAC}),
	Y: FieldFromLimbs([4]uint64{0x9C47D08FFB10D4B8, 0xFD17B448A6855419, 0x5DA4FBFC0E1108A8, 0x483ADA7726A3C465}),
	Z: FieldOne,
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.Z.IsZero()
}

// Double returns p + p, using the standard Jacobian doubling formula
// specialized for a == 0 (secp256k1's short Weierstrass form).
func (p Point) Double() Point {
	if p.IsInfinity() || p.Y.IsZero() {
		return PointInfinity
	}
	ySq := p.Y.Square()
	s := p.X.Mul(ySq).Add(p.X.Mul(ySq)).Add(p.X.Mul(ySq)).Add(p.X.Mul(ySq))
	m := p.X.Square().Add(p.X.Square()).Add(p.X.Square())
	ySqSq := ySq.Square()
	eight := ySqSq.Add(ySqSq).Add(ySqSq).Add(ySqSq).Add(ySqSq).Add(ySqSq).Add(ySqSq).Add(ySqSq)

	x3 := m.Square().Sub(s).Sub(s)
	y3 := m.Mul(s.Sub(x3)).Sub(eight)
	z3 := p.Y.Mul(p.Z).Add(p.Y.Mul(p.Z))

	return Point{X: x3, Y: y3, Z: z3}
}

// Add returns p + q via the general Jacobian addition formula. Handles
// the point-at-infinity and p == q (delegating to Double) cases.
func (p Point) Add(q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}

	z1z1 := p.Z.Square()
	z2z2 := q.Z.Square()
	u1 := p.X.Mul(z2z2)
	u2 := q.X.Mul(z1z1)
	s1 := p.Y.Mul(q.Z).Mul(z2z2)
	s2 := q.Y.Mul(p.Z).Mul(z1z1)

	if u1.Equal(u2) {
		if !s1.Equal(s2) {
			return PointInfinity
		}
		return p.Double()
	}

	h := u2.Sub(u1)
	i := h.Add(h).Square()
	j := h.Mul(i)
	r := s2.Sub(s1).Add(s2.Sub(s1))
	v := u1.Mul(i)

	x3 := r.Square().Sub(j).Sub(v).Sub(v)
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Add(s1.Mul(j)))
	z3 := p.Z.Add(q.Z).Square().Sub(z1z1).Sub(z2z2).Mul(h)

	return Point{X: x3, Y: y3, Z: z3}
}

// ToAffine returns the affine (x, y) coordinates of p, paying for a
// single field inversion. Returns (0, 0, false) for the point at
// infinity.
func (p Point) ToAffine() (FieldElement, FieldElement, bool) {
	if p.IsInfinity() {
		return FieldZero, FieldZero, false
	}
	zInv := p.Z.Inv()
	zInv2 := zInv.Square()
	zInv3 := zInv2.Mul(zInv)
	return p.X.Mul(zInv2), p.Y.Mul(zInv3), true
}

// Mul returns k*p via left-to-right double-and-add over k's 256 bits,
// most significant bit first. Not constant time: vanity search only
// ever multiplies by the generator to derive public keys that are about
// to be published, so there is no secret-dependent timing surface worth
// paying for.
func (p Point) Mul(k Scalar) Point {
	result := PointInfinity
	for limbIdx := 3; limbIdx >= 0; limbIdx-- {
		word := k.limbs[limbIdx]
		for bit := 63; bit >= 0; bit-- {
			result = result.Double()
			if (word>>uint(bit))&1 == 1 {
				result = result.Add(p)
			}
		}
	}
	return result
}

// IsOnCurve reports whether p's affine form satisfies y^2 = x^3 + 7.
func (p Point) IsOnCurve() bool {
	x, y, ok := p.ToAffine()
	if !ok {
		return false
	}
	lhs := y.Square()
	rhs := x.Square().Mul(x).Add(curveB)
	return lhs.Equal(rhs)
}
