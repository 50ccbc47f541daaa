package address

import "github.com/Asylian21/erg-vanity-gpu/internal/primitives"

// P2PKAddressBytes is the length of a P2PK address before Base58
// encoding: 1 prefix byte + 33-byte compressed pubkey + 4-byte checksum.
const P2PKAddressBytes = 38

// ChecksumLen is the length of the trailing Blake2b-256 checksum.
const ChecksumLen = 4

// EncodeP2PK encodes a compressed public key as a P2PK address on the
// given network: Base58(prefix ‖ pubkey ‖ Blake2b-256(prefix ‖ pubkey)[:4]).
func EncodeP2PK(pubkey [33]byte, network Network) string {
	addressBytes := P2PKAddressBytesOf(pubkey, network)
	return primitives.Base58Encode(addressBytes[:])
}

// EncodeP2PKMainnet encodes pubkey as a mainnet P2PK address.
func EncodeP2PKMainnet(pubkey [33]byte) string {
	return EncodeP2PK(pubkey, Mainnet)
}

// EncodeP2PKTestnet encodes pubkey as a testnet P2PK address.
func EncodeP2PKTestnet(pubkey [33]byte) string {
	return EncodeP2PK(pubkey, Testnet)
}

// P2PKAddressBytesOf builds the raw 38-byte P2PK address payload
// (prefix ‖ pubkey ‖ checksum) without Base58-encoding it, used both by
// EncodeP2PK and by the device-side prefix match, which tests the
// Base58 encoding of these exact bytes without materializing the string.
func P2PKAddressBytesOf(pubkey [33]byte, network Network) [P2PKAddressBytes]byte {
	prefix := PrefixByte(network, P2PK)

	var content [34]byte
	content[0] = prefix
	copy(content[1:], pubkey[:])
	checksum := primitives.Blake2b256(content[:])

	var out [P2PKAddressBytes]byte
	out[0] = prefix
	copy(out[1:34], pubkey[:])
	copy(out[34:38], checksum[:ChecksumLen])
	return out
}
