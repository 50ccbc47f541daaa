package primitives

// base58Alphabet is the Bitcoin Base58 alphabet: digits and letters with
// '0', 'O', 'I', and 'l' removed to avoid visual ambiguity.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// base58Digits runs the standard big-integer long division by 58 over the
// non-zero-prefix portion of data, returning the base-58 digit sequence
// (0..57, most significant first, no leading-zero digits stripped from
// the buffer but returned buffer may have leading zero *digits* that the
// caller strips). This is the single division routine shared by
// Base58Encode and Base58HasPrefix so host and device agree on exactly
// one implementation of the hard part.
func base58Digits(data []byte) []byte {
	// Worst case expansion factor: log(256)/log(58) ~= 1.365; 138/100
	// leaves headroom, matching the reference Base58 implementations.
	buf := make([]byte, len(data)*138/100+1)
	for _, b := range data {
		carry := int(b)
		for i := len(buf) - 1; i >= 0; i-- {
			carry += 256 * int(buf[i])
			buf[i] = byte(carry % 58)
			carry /= 58
		}
	}
	return buf
}

// Base58Encode encodes data using the Bitcoin Base58 alphabet. Leading
// zero bytes become leading '1' characters; the rest is a standard
// big-integer long division by 58.
func Base58Encode(data []byte) string {
	leadingZeros := 0
	for leadingZeros < len(data) && data[leadingZeros] == 0 {
		leadingZeros++
	}

	digits := base58Digits(data[leadingZeros:])
	start := 0
	for start < len(digits) && digits[start] == 0 {
		start++
	}

	out := make([]byte, 0, leadingZeros+len(digits)-start)
	for i := 0; i < leadingZeros; i++ {
		out = append(out, '1')
	}
	for _, d := range digits[start:] {
		out = append(out, base58Alphabet[d])
	}
	return string(out)
}

// Base58HasPrefix reports whether Base58Encode(data) would begin with
// pattern, without materializing the full encoded string. This is the
// host-side twin of the device kernel's fast prefix check: both run the
// same digit-producing long division, then translate only as many leading
// digits into characters as the pattern needs. If ignoreCase is set both
// the produced characters and pattern are lowercased before comparison.
//
// This must agree with strings.HasPrefix(Base58Encode(data), pattern)
// (post-lowercasing when ignoreCase) for every input; see base58_test.go.
func Base58HasPrefix(data []byte, pattern string, ignoreCase bool) bool {
	if len(pattern) == 0 {
		return true
	}

	cmpPattern := pattern
	if ignoreCase {
		cmpPattern = lowerASCII(pattern)
	}

	leadingZeros := 0
	for leadingZeros < len(data) && data[leadingZeros] == 0 {
		leadingZeros++
	}

	matched := 0
	for matched < leadingZeros && matched < len(cmpPattern) {
		if !matchBase58Char('1', cmpPattern[matched], ignoreCase) {
			return false
		}
		matched++
	}
	if matched == len(cmpPattern) {
		return true
	}

	digits := base58Digits(data[leadingZeros:])
	start := 0
	for start < len(digits) && digits[start] == 0 {
		start++
	}
	digits = digits[start:]

	needed := len(cmpPattern) - matched
	if len(digits) < needed {
		return false
	}
	for i := 0; i < needed; i++ {
		c := base58Alphabet[digits[i]]
		if !matchBase58Char(c, cmpPattern[matched+i], ignoreCase) {
			return false
		}
	}
	return true
}

func matchBase58Char(got, want byte, ignoreCase bool) bool {
	if ignoreCase {
		return lowerByte(got) == lowerByte(want)
	}
	return got == want
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func lowerASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = lowerByte(s[i])
	}
	return string(out)
}
