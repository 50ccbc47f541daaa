package bip

// ErgoPurpose is the BIP44 purpose constant used by every Ergo path.
const ErgoPurpose = uint32(44)

// DeriveErgoFirstKey derives m/44'/429'/0'/0/0, the default single-address path.
func DeriveErgoFirstKey(master ExtendedKey) (ExtendedKey, error) {
	return DeriveErgoKey(master, 0, 0, 0)
}
