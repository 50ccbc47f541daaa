// Package address encodes Ergo pay-to-public-key addresses: a prefix
// byte identifying network and address type, the 33-byte compressed
// public key, and a 4-byte Blake2b-256 checksum, all Base58-encoded.
package address

// Network identifies which Ergo network an address targets.
type Network byte

const (
	Mainnet Network = 0x00
	Testnet Network = 0x10
)

// AddressType identifies the scripting form of an address. Only P2PK is
// ever constructed by this module, but the other two values document
// the full prefix-byte space.
type AddressType byte

const (
	P2PK AddressType = 0x01
	P2SH AddressType = 0x02
	P2S  AddressType = 0x03
)

// PrefixByte combines a network and address type into Ergo's single
// prefix byte: network | address_type.
func PrefixByte(network Network, addrType AddressType) byte {
	return byte(network) | byte(addrType)
}
