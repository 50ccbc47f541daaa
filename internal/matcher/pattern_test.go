package matcher

import "testing"

func TestValidatePatternAcceptsGoodPrefixes(t *testing.T) {
	for _, p := range []string{"9", "9f", "9err", "9ego", "9heLLoWor1d"} {
		if _, err := ValidatePattern(p, false); err != nil {
			t.Errorf("ValidatePattern(%q, false) = %v, want nil", p, err)
		}
	}
}

func TestValidatePatternRejectsEmpty(t *testing.T) {
	if _, err := ValidatePattern("", false); err == nil {
		t.Fatalf("expected error for empty pattern")
	}
}

func TestValidatePatternRejectsNonNinePrefix(t *testing.T) {
	if _, err := ValidatePattern("abc", false); err == nil {
		t.Fatalf("expected error for pattern not starting with 9")
	}
}

func TestValidatePatternRejectsBadSecondChar(t *testing.T) {
	for _, p := range []string{"9a", "9b", "9A", "90"} {
		if _, err := ValidatePattern(p, false); err == nil {
			t.Errorf("ValidatePattern(%q, false) should fail, second char not in e/f/g/h/i", p)
		}
	}
}

func TestValidatePatternRejectsNonBase58CharsDeepInPattern(t *testing.T) {
	for _, p := range []string{"9fO", "9fI", "9fl"} {
		if _, err := ValidatePattern(p, false); err == nil {
			t.Errorf("ValidatePattern(%q, false) should fail, contains a non-Base58 character", p)
		}
	}
}

func TestValidatePatternRejectsNonASCII(t *testing.T) {
	if _, err := ValidatePattern("9fé", false); err == nil {
		t.Fatalf("expected error for non-ASCII pattern")
	}
}

func TestValidatePatternRejectsTooLong(t *testing.T) {
	p := "9f"
	for len(p) <= maxPatternLen {
		p += "e"
	}
	if _, err := ValidatePattern(p, false); err == nil {
		t.Fatalf("expected error for pattern longer than %d characters", maxPatternLen)
	}
}

func TestValidatePatternIgnoreCaseNormalizesAndAccepts(t *testing.T) {
	got, err := ValidatePattern("9F", true)
	if err != nil {
		t.Fatalf("ValidatePattern(%q, true) = %v, want nil", "9F", err)
	}
	if got != "9f" {
		t.Errorf("ValidatePattern(%q, true) = %q, want %q", "9F", got, "9f")
	}
}

func TestValidatePatternCaseSensitiveUppercaseSecondCharErrorsMentioningUppercase(t *testing.T) {
	_, err := ValidatePattern("9F", false)
	if err == nil {
		t.Fatalf("expected error for %q with ignoreCase=false", "9F")
	}
	if !containsFold(err.Error(), "uppercase") {
		t.Errorf("ValidatePattern(%q, false) error = %q, want it to mention %q", "9F", err.Error(), "uppercase")
	}
}

func containsFold(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		match := true
		for j := 0; j < len(substr); j++ {
			if lowerASCII(s[i+j]) != lowerASCII(substr[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestNewBankPacksOffsetsAndLengths(t *testing.T) {
	bank, err := NewBank([]string{"9e", "9fab"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if string(bank.Data) != "9e9fab" {
		t.Errorf("Data = %q, want %q", bank.Data, "9e9fab")
	}
	wantOffsets := []uint32{0, 2}
	wantLens := []uint32{2, 4}
	for i := range wantOffsets {
		if bank.Offsets[i] != wantOffsets[i] || bank.Lens[i] != wantLens[i] {
			t.Errorf("pattern %d: offset=%d len=%d, want offset=%d len=%d", i, bank.Offsets[i], bank.Lens[i], wantOffsets[i], wantLens[i])
		}
	}
}

func TestNewBankNormalizesPatternsWhenIgnoreCase(t *testing.T) {
	bank, err := NewBank([]string{"9F"}, true)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if bank.Patterns[0] != "9f" {
		t.Errorf("Patterns[0] = %q, want %q", bank.Patterns[0], "9f")
	}
}

func TestNewBankRejectsEmptyList(t *testing.T) {
	if _, err := NewBank(nil, false); err == nil {
		t.Fatalf("expected error for empty pattern list")
	}
}

func TestNewBankRejectsTooManyPatterns(t *testing.T) {
	patterns := make([]string, MaxPatterns+1)
	for i := range patterns {
		patterns[i] = "9e"
	}
	if _, err := NewBank(patterns, false); err == nil {
		t.Fatalf("expected error for too many patterns")
	}
}

func TestBankMatchIndexCaseSensitive(t *testing.T) {
	bank, err := NewBank([]string{"9eAB", "9fCD"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if idx := bank.MatchIndex("9eABxyz"); idx != 0 {
		t.Errorf("MatchIndex = %d, want 0", idx)
	}
	if idx := bank.MatchIndex("9eabxyz"); idx != -1 {
		t.Errorf("MatchIndex = %d, want -1 (case-sensitive mismatch)", idx)
	}
}

func TestBankMatchIndexIgnoreCase(t *testing.T) {
	bank, err := NewBank([]string{"9eAB"}, true)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if idx := bank.MatchIndex("9eabxyz"); idx != 0 {
		t.Errorf("MatchIndex = %d, want 0 (ignore case)", idx)
	}
}

func TestBankMatchIndexNoMatch(t *testing.T) {
	bank, err := NewBank([]string{"9eAB"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if idx := bank.MatchIndex("9fghijk"); idx != -1 {
		t.Errorf("MatchIndex = %d, want -1", idx)
	}
}
