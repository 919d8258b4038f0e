package dataset

import "testing"

// TestNormalizeKey_CaseAndWhitespace verifies that case and padding
// differences between the two sources normalize to the same key.
func TestNormalizeKey_CaseAndWhitespace(t *testing.T) {
	if got, want := NormalizeKey(" abc "), NormalizeKey("ABC"); got != want {
		t.Errorf("expected %q == %q", got, want)
	}
	if got := NormalizeKey("Indore"); got != "INDORE" {
		t.Errorf("expected INDORE, got %q", got)
	}
}

// TestNormalizeKey_Idempotent verifies normalize(normalize(s)) == normalize(s).
func TestNormalizeKey_Idempotent(t *testing.T) {
	for _, s := range []string{"  Ujjain ", "DEWAS", "", "washim"} {
		once := NormalizeKey(s)
		if twice := NormalizeKey(once); twice != once {
			t.Errorf("normalize not idempotent for %q: %q vs %q", s, once, twice)
		}
	}
}

// TestNormalizeKey_BlankSentinel verifies that blank names map to the null
// key sentinel and the sentinel never equals a real key.
func TestNormalizeKey_BlankSentinel(t *testing.T) {
	if got := NormalizeKey("   "); got != NullKey {
		t.Errorf("expected null key sentinel, got %q", got)
	}
	if NormalizeKey("Akola") == NullKey {
		t.Error("real district normalized to the null key sentinel")
	}
}
