package secrets

import "testing"

func TestAESGCMRoundTrip(t *testing.T) {
	enc, err := NewAESGCM("passphrase")
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, plain := range []string{"db.internal:3306", "profdev", "", "p@ss with spaces"} {
		sealed, err := enc.Encrypt(plain)
		if err != nil {
			t.Fatalf("encrypt %q: %v", plain, err)
		}
		got, err := enc.Decrypt(sealed)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plain, err)
		}
		if got != plain {
			t.Errorf("round trip: got %q, want %q", got, plain)
		}
	}
}

func TestAESGCMWrongPassphrase(t *testing.T) {
	a, _ := NewAESGCM("right")
	b, _ := NewAESGCM("wrong")

	sealed, err := a.Encrypt("db.internal:3306")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := b.Decrypt(sealed); err == nil {
		t.Error("decryption with the wrong passphrase succeeded")
	}
}

func TestAESGCMGarbageInput(t *testing.T) {
	enc, _ := NewAESGCM("passphrase")
	for _, in := range []string{"not base64!!", "YWJj", ""} {
		if _, err := enc.Decrypt(in); err == nil {
			t.Errorf("Decrypt(%q) should fail", in)
		}
	}
}

func TestNewAESGCMEmptyPassphrase(t *testing.T) {
	if _, err := NewAESGCM(""); err == nil {
		t.Error("empty passphrase accepted")
	}
}

func TestPlaintextPassthrough(t *testing.T) {
	got, err := (Plaintext{}).Decrypt("as-is")
	if err != nil || got != "as-is" {
		t.Errorf("expected passthrough, got %q, %v", got, err)
	}
}
