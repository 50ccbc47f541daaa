package address

import (
	"testing"

	"github.com/Asylian21/erg-vanity-gpu/internal/bip"
	"github.com/Asylian21/erg-vanity-gpu/internal/secp256k1"
)

func TestPrefixByteValues(t *testing.T) {
	cases := []struct {
		network Network
		addr    AddressType
		want    byte
	}{
		{Mainnet, P2PK, 0x01},
		{Testnet, P2PK, 0x11},
		{Mainnet, P2SH, 0x02},
		{Mainnet, P2S, 0x03},
	}
	for _, c := range cases {
		got := PrefixByte(c.network, c.addr)
		if got != c.want {
			t.Errorf("PrefixByte(%v, %v) = %#x, want %#x", c.network, c.addr, got, c.want)
		}
	}
}

func TestEncodeP2PKMainnetStartsWithNine(t *testing.T) {
	master := deriveTestMaster(t)
	ergoKey, err := bip.DeriveErgoFirstKey(master)
	if err != nil {
		t.Fatalf("DeriveErgoFirstKey: %v", err)
	}
	scalar, ok := ergoKey.PrivateKeyScalar()
	if !ok {
		t.Fatalf("PrivateKeyScalar failed")
	}
	pub, ok := secp256k1.PubKeyFromPrivateKey(scalar)
	if !ok {
		t.Fatalf("PubKeyFromPrivateKey failed")
	}

	addr := EncodeP2PKMainnet(pub)
	if len(addr) == 0 || addr[0] != '9' {
		t.Errorf("mainnet P2PK address = %q, want prefix '9'", addr)
	}
}

func TestEncodeP2PKAddressBytesLength(t *testing.T) {
	master := deriveTestMaster(t)
	ergoKey, err := bip.DeriveErgoFirstKey(master)
	if err != nil {
		t.Fatalf("DeriveErgoFirstKey: %v", err)
	}
	scalar, _ := ergoKey.PrivateKeyScalar()
	pub, _ := secp256k1.PubKeyFromPrivateKey(scalar)

	bytes := P2PKAddressBytesOf(pub, Mainnet)
	if len(bytes) != P2PKAddressBytes {
		t.Fatalf("address bytes length = %d, want %d", len(bytes), P2PKAddressBytes)
	}
	if bytes[0] != 0x01 {
		t.Errorf("address prefix byte = %#x, want 0x01", bytes[0])
	}
}

func TestEncodeP2PKMainnetVsTestnetDiffer(t *testing.T) {
	master := deriveTestMaster(t)
	ergoKey, err := bip.DeriveErgoFirstKey(master)
	if err != nil {
		t.Fatalf("DeriveErgoFirstKey: %v", err)
	}
	scalar, _ := ergoKey.PrivateKeyScalar()
	pub, _ := secp256k1.PubKeyFromPrivateKey(scalar)

	mainnet := EncodeP2PKMainnet(pub)
	testnet := EncodeP2PKTestnet(pub)
	if mainnet == testnet {
		t.Fatalf("mainnet and testnet encodings should differ")
	}
}

func deriveTestMaster(t *testing.T) bip.ExtendedKey {
	t.Helper()
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed := bip.MnemonicToSeed(mnemonic, "")
	master, err := bip.FromSeed(seed[:])
	if err != nil {
		t.Fatalf("bip.FromSeed: %v", err)
	}
	return master
}
