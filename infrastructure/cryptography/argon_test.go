package cryptography

import "testing"

func TestArgonHasher(t *testing.T) {
	hash, err := TokenHasher.HashString("header.payload.signature", nil)
	if err != nil {
		t.Fatalf("HashString() error = %v", err)
	}
	if string(hash) == "header.payload.signature" {
		t.Fatalf("hash must not equal the input")
	}
	if !TokenHasher.VerifyHashData(string(hash), "header.payload.signature") {
		t.Errorf("VerifyHashData() rejected the original token")
	}
	if TokenHasher.VerifyHashData(string(hash), "header.payload.forged") {
		t.Errorf("VerifyHashData() accepted a different token")
	}
	if TokenHasher.VerifyHashData("not-an-argon-hash", "header.payload.signature") {
		t.Errorf("VerifyHashData() accepted a malformed hash")
	}
}
