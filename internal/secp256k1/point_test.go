package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func scalarFromHex(t *testing.T, s string) Scalar {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	sc, ok := ScalarFromBytes(b)
	if !ok {
		t.Fatalf("value %q out of range for scalar", s)
	}
	return sc
}

func TestGeneratorIsOnCurve(t *testing.T) {
	if !G.IsOnCurve() {
		t.Fatalf("G is not on the curve")
	}
}

func TestPointInfinityIdentities(t *testing.T) {
	if !pointsEqual(G.Add(PointInfinity), G) {
		t.Fatalf("G + O != G")
	}
	if !PointInfinity.Add(PointInfinity).IsInfinity() {
		t.Fatalf("O + O != O")
	}
}

func pointsEqual(p, q Point) bool {
	px, py, pok := p.ToAffine()
	qx, qy, qok := q.ToAffine()
	if pok != qok {
		return false
	}
	if !pok {
		return true
	}
	return px.Equal(qx) && py.Equal(qy)
}

func TestDoubleGMatchesAddGG(t *testing.T) {
	doubled := G.Double()
	added := G.Add(G)
	if !pointsEqual(doubled, added) {
		t.Fatalf("G.Double() != G.Add(G)")
	}
}

func TestScalarMulOneIsIdentity(t *testing.T) {
	one := scalarFromHex(t, "0000000000000000000000000000000000000000000000000000000000000001")
	if !pointsEqual(G.Mul(one), G) {
		t.Fatalf("1*G != G")
	}
}

func TestScalarMulTwoMatchesDouble(t *testing.T) {
	two := scalarFromHex(t, "0000000000000000000000000000000000000000000000000000000000000002")
	if !pointsEqual(G.Mul(two), G.Double()) {
		t.Fatalf("2*G != G.Double()")
	}
}

func TestScalarMulCrossCheckAgainstBtcec(t *testing.T) {
	scalars := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000003",
		"deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbabe",
		"1234000000000000000000000000000000000000000000000000000000abcdef",
	}
	for _, s := range scalars {
		sc := scalarFromHex(t, s)
		got, ok := PubKeyFromPrivateKey(sc)
		if !ok {
			t.Fatalf("PubKeyFromPrivateKey(%s) unexpectedly failed", s)
		}

		keyBytes, err := hex.DecodeString(s)
		if err != nil {
			t.Fatalf("bad hex: %v", err)
		}
		priv, pub := btcec.PrivKeyFromBytes(keyBytes)
		_ = priv
		want := pub.SerializeCompressed()

		if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
			t.Errorf("pubkey(%s) = %x, want %x", s, got[:], want)
		}
	}
}

func TestPubKeyFromPrivateKeyRejectsZero(t *testing.T) {
	if _, ok := PubKeyFromPrivateKey(ScalarZero); ok {
		t.Fatalf("PubKeyFromPrivateKey(0) should fail")
	}
}

func TestScalarNMinusOneTimesGIsOnCurve(t *testing.T) {
	nMinus1 := Scalar{limbs: [4]uint64{scalarN[0] - 1, scalarN[1], scalarN[2], scalarN[3]}}
	p := G.Mul(nMinus1)
	if !p.IsOnCurve() {
		t.Fatalf("(n-1)*G is not on the curve")
	}
	// (n-1)*G + G should land back at infinity, since n*G == O.
	if !p.Add(G).IsInfinity() {
		t.Fatalf("(n-1)*G + G != O")
	}
}
