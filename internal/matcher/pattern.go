// Package matcher validates user-supplied Base58 prefix patterns and
// packs them into the fixed-size layout the device kernel expects:
// concatenated pattern bytes plus parallel offset/length arrays.
package matcher

import (
	"fmt"
	"strings"
)

// MaxPatterns is the maximum number of patterns a single search can
// hold, matching the device kernel's fixed-size pattern arrays.
const MaxPatterns = 64

// MaxPatternData is the maximum total size, in bytes, of all
// concatenated pattern strings.
const MaxPatternData = 1024

// maxPatternLen is the maximum length of a single pattern.
const maxPatternLen = 32

// base58Alphabet is the Bitcoin/Ergo Base58 alphabet: digits and
// letters with '0', 'O', 'I', and 'l' removed to avoid visual
// ambiguity.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// validSecondChars are the only second characters an Ergo mainnet P2PK
// address can have, a consequence of the address prefix byte (0x01)
// under Base58 encoding.
var validSecondChars = map[byte]bool{'e': true, 'f': true, 'g': true, 'h': true, 'i': true}

func isBase58Byte(c byte) bool {
	return strings.IndexByte(base58Alphabet, c) >= 0
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ValidatePattern checks that pattern could ever match an Ergo mainnet
// P2PK address and returns its normalized form: non-empty, ASCII,
// length <= 32, every character in the Base58 alphabet, first
// character '9', and if 2+ characters, second character in
// {e, f, g, h, i} after lowercasing iff ignoreCase. When ignoreCase is
// true the returned pattern is lower-cased; otherwise it is returned
// unchanged.
func ValidatePattern(pattern string, ignoreCase bool) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern must not be empty")
	}
	if len(pattern) > maxPatternLen {
		return "", fmt.Errorf("pattern %q exceeds maximum length of %d", pattern, maxPatternLen)
	}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c >= 0x80 {
			return "", fmt.Errorf("pattern %q must be ASCII", pattern)
		}
		if !isBase58Byte(c) {
			return "", fmt.Errorf("pattern %q contains %q, not a Base58 character", pattern, c)
		}
	}

	normalized := pattern
	if ignoreCase {
		normalized = strings.ToLower(pattern)
	}

	if normalized[0] != '9' {
		return "", fmt.Errorf("Ergo mainnet addresses start with '9', pattern %q can never match", pattern)
	}
	if len(normalized) >= 2 && !validSecondChars[normalized[1]] {
		if !ignoreCase && validSecondChars[lowerASCII(normalized[1])] {
			return "", fmt.Errorf("pattern %q has an uppercase second character; Ergo mainnet P2PK addresses only produce lower-case e, f, g, h, or i there, retry with --ignore-case", pattern)
		}
		return "", fmt.Errorf("Ergo mainnet P2PK addresses start with 9e, 9f, 9g, 9h, or 9i: pattern %q can never match", pattern)
	}
	return normalized, nil
}

// Bank is a validated set of target patterns, packed for both host-side
// matching and device upload.
type Bank struct {
	Patterns   []string
	IgnoreCase bool

	// Data is the concatenated bytes of every pattern, with no
	// separators, padded to MaxPatternData on device upload.
	Data []byte
	// Offsets[i] is the byte offset of Patterns[i] within Data.
	Offsets []uint32
	// Lens[i] is the byte length of Patterns[i].
	Lens []uint32
}

// NewBank validates and packs patterns into a Bank. ignoreCase controls
// whether matching is case-insensitive; when true, every pattern is
// normalized to lower case before being validated and packed.
func NewBank(patterns []string, ignoreCase bool) (*Bank, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern required")
	}
	if len(patterns) > MaxPatterns {
		return nil, fmt.Errorf("too many patterns: %d exceeds %d limit", len(patterns), MaxPatterns)
	}

	data := make([]byte, 0, MaxPatternData)
	offsets := make([]uint32, len(patterns))
	lens := make([]uint32, len(patterns))
	normalized := make([]string, len(patterns))

	for i, p := range patterns {
		np, err := ValidatePattern(p, ignoreCase)
		if err != nil {
			return nil, err
		}
		normalized[i] = np
		offsets[i] = uint32(len(data))
		lens[i] = uint32(len(np))
		data = append(data, np...)
	}

	if len(data) > MaxPatternData {
		return nil, fmt.Errorf("pattern data too large: %d bytes exceeds %d limit", len(data), MaxPatternData)
	}

	return &Bank{
		Patterns:   normalized,
		IgnoreCase: ignoreCase,
		Data:       data,
		Offsets:    offsets,
		Lens:       lens,
	}, nil
}

// MatchIndex returns the index of the first pattern in the bank for
// which address has a matching prefix, or -1 if none match. Patterns
// are already normalized by NewBank, so ignore-case matching only
// needs to lower-case the address.
func (b *Bank) MatchIndex(address string) int {
	for i, p := range b.Patterns {
		if b.IgnoreCase {
			if len(address) >= len(p) && strings.EqualFold(address[:len(p)], p) {
				return i
			}
		} else if strings.HasPrefix(address, p) {
			return i
		}
	}
	return -1
}
