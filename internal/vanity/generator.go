// Package vanity chains the BIP39/BIP32/BIP44/address layers into the
// full per-candidate pipeline: entropy in, an address (and the mnemonic
// and private key that produced it) out. It also provides the CPU
// reference search used as a correctness oracle for the device kernel.
package vanity

import (
	"fmt"

	"github.com/Asylian21/erg-vanity-gpu/internal/address"
	"github.com/Asylian21/erg-vanity-gpu/internal/bip"
	"github.com/Asylian21/erg-vanity-gpu/internal/secp256k1"
)

// GeneratedAddress is the result of deriving one candidate address. Its
// Format method redacts Mnemonic and PrivateKey so a GeneratedAddress
// can be logged or included in an error without leaking secret
// material; callers that truly need the secrets read the fields
// directly.
type GeneratedAddress struct {
	Address      string
	Mnemonic     string
	PrivateKey   [32]byte
	AddressIndex uint32
}

// Format implements fmt.Formatter so that %v, %s, and %+v all redact
// Mnemonic and PrivateKey while still showing Address and AddressIndex.
func (g GeneratedAddress) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "GeneratedAddress{Address: %q, AddressIndex: %d, Mnemonic: <redacted>, PrivateKey: <redacted>}", g.Address, g.AddressIndex)
}

// GoString implements fmt.GoStringer for the same reason Format does:
// %#v must not print secrets either.
func (g GeneratedAddress) GoString() string {
	return fmt.Sprintf("%v", g)
}

// GenerateAddressFromEntropy runs the full pipeline for 32-byte entropy
// at the default path m/44'/429'/0'/0/0: entropy -> mnemonic -> seed ->
// BIP32 master -> BIP44 child key -> compressed pubkey -> P2PK address.
func GenerateAddressFromEntropy(entropy []byte, network address.Network) (GeneratedAddress, error) {
	return DeriveCandidateAddress(entropy, network, 0)
}

// DeriveCandidateAddress runs the full pipeline for entropy at a given
// BIP44 address index, used both by GenerateAddressFromEntropy and by
// host-side verification of device-reported hits that can name any
// address index within a work item's scan range.
func DeriveCandidateAddress(entropy []byte, network address.Network, addressIndex uint32) (GeneratedAddress, error) {
	mnemonic, err := bip.EntropyToMnemonic(entropy)
	if err != nil {
		return GeneratedAddress{}, fmt.Errorf("vanity: entropy to mnemonic: %w", err)
	}

	seed := bip.MnemonicToSeed(mnemonic, "")
	master, err := bip.FromSeed(seed[:])
	if err != nil {
		return GeneratedAddress{}, fmt.Errorf("vanity: seed to master key: %w", err)
	}

	child, err := bip.DeriveErgoKey(master, 0, 0, addressIndex)
	if err != nil {
		return GeneratedAddress{}, fmt.Errorf("vanity: derive ergo child key: %w", err)
	}

	scalar, ok := child.PrivateKeyScalar()
	if !ok {
		return GeneratedAddress{}, fmt.Errorf("vanity: child key is not a valid scalar")
	}
	pub, ok := secp256k1.PubKeyFromPrivateKey(scalar)
	if !ok {
		return GeneratedAddress{}, fmt.Errorf("vanity: child key has no corresponding public key")
	}

	addr := address.EncodeP2PK(pub, network)
	return GeneratedAddress{
		Address:      addr,
		Mnemonic:     mnemonic,
		PrivateKey:   child.Key,
		AddressIndex: addressIndex,
	}, nil
}
