// Package bip implements BIP32 hierarchical deterministic key derivation,
// BIP39 mnemonic encoding, and the BIP44 path used to derive Ergo keys
// (m/44'/429'/account'/change/index). Every routine is deterministic and
// side-effect free so host code can re-derive a candidate address and
// compare it against a device-reported hit.
package bip

import (
	"encoding/binary"
	"errors"

	"github.com/Asylian21/erg-vanity-gpu/internal/primitives"
	"github.com/Asylian21/erg-vanity-gpu/internal/secp256k1"
)

// Hardened is the BIP32 hardened-derivation flag (bit 31 set).
const Hardened = uint32(0x80000000)

// ErgoCoinType is the BIP44 coin type registered for Ergo.
const ErgoCoinType = uint32(429)

// ErrInvalidSeedLength is returned by FromSeed for seeds outside [16, 64] bytes.
var ErrInvalidSeedLength = errors.New("bip32: seed length must be between 16 and 64 bytes")

// ErrInvalidChildKey is returned when a derived I_L is >= the curve order,
// an event BIP32 expects with probability roughly 2^-127.
var ErrInvalidChildKey = errors.New("bip32: derived key is out of range")

// ErrZeroKey is returned when a derived private key is exactly zero, an
// event BIP32 expects with probability roughly 2^-127.
var ErrZeroKey = errors.New("bip32: derived key is zero")

// ExtendedKey is a BIP32 extended private key: a 32-byte private key
// paired with its 32-byte chain code.
type ExtendedKey struct {
	Key       [32]byte
	ChainCode [32]byte
}

// FromSeed derives the BIP32 master key from a BIP39 seed via
// HMAC-SHA512("Bitcoin seed", seed).
func FromSeed(seed []byte) (ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return ExtendedKey{}, ErrInvalidSeedLength
	}
	i := primitives.HMACSHA512([]byte("Bitcoin seed"), seed)

	var key [32]byte
	copy(key[:], i[:32])
	if _, ok := secp256k1.ScalarFromBytes(key[:]); !ok {
		return ExtendedKey{}, ErrInvalidChildKey
	}
	if key == ([32]byte{}) {
		return ExtendedKey{}, ErrZeroKey
	}

	var chainCode [32]byte
	copy(chainCode[:], i[32:])
	return ExtendedKey{Key: key, ChainCode: chainCode}, nil
}

// DeriveChild derives the child of ext at the given index. Indices with
// the high bit set (index >= Hardened) use hardened derivation.
func DeriveChild(ext ExtendedKey, index uint32) (ExtendedKey, error) {
	parentScalar, ok := secp256k1.ScalarFromBytes(ext.Key[:])
	if !ok {
		return ExtendedKey{}, ErrInvalidChildKey
	}

	var data [37]byte
	if index >= Hardened {
		data[0] = 0x00
		copy(data[1:33], ext.Key[:])
	} else {
		pub, ok := secp256k1.PubKeyFromPrivateKey(parentScalar)
		if !ok {
			return ExtendedKey{}, ErrZeroKey
		}
		copy(data[0:33], pub[:])
	}
	binary.BigEndian.PutUint32(data[33:37], index)

	i := primitives.HMACSHA512(ext.ChainCode[:], data[:])

	ilScalar, ok := secp256k1.ScalarFromBytes(i[:32])
	if !ok {
		return ExtendedKey{}, ErrInvalidChildKey
	}
	if ilScalar.IsZero() {
		return ExtendedKey{}, ErrInvalidChildKey
	}

	childScalar := ilScalar.Add(parentScalar)
	if childScalar.IsZero() {
		return ExtendedKey{}, ErrZeroKey
	}

	var childCC [32]byte
	copy(childCC[:], i[32:])

	return ExtendedKey{Key: childScalar.ToBytes(), ChainCode: childCC}, nil
}

// DerivePath chains DeriveChild across an entire path, starting from
// master.
func DerivePath(master ExtendedKey, path []uint32) (ExtendedKey, error) {
	current := master
	for _, index := range path {
		var err error
		current, err = DeriveChild(current, index)
		if err != nil {
			return ExtendedKey{}, err
		}
	}
	return current, nil
}

// DeriveErgoKey derives m/44'/429'/account'/change/index from master.
func DeriveErgoKey(master ExtendedKey, account, change, index uint32) (ExtendedKey, error) {
	return DerivePath(master, []uint32{
		Hardened | 44,
		Hardened | ErgoCoinType,
		Hardened | account,
		change,
		index,
	})
}

// PrivateKeyScalar parses the extended key's raw private key as a
// secp256k1 scalar.
func (e ExtendedKey) PrivateKeyScalar() (secp256k1.Scalar, bool) {
	return secp256k1.ScalarFromBytes(e.Key[:])
}
