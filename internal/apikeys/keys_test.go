package apikeys

import (
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey returned error: %v", err)
	}

	if !strings.HasPrefix(plaintext, "lsk_") {
		t.Fatalf("expected lsk_ prefix, got %q", plaintext)
	}
	if len(plaintext) != len("lsk_")+64 {
		t.Fatalf("expected 64 hex chars after the prefix, got length %d", len(plaintext))
	}
	if !strings.HasPrefix(plaintext, prefix) {
		t.Fatalf("prefix %q is not a prefix of the key", prefix)
	}
	if len(prefix) != 12 {
		t.Fatalf("expected a 12 char prefix, got %d", len(prefix))
	}
	if hash == plaintext {
		t.Fatal("hash must not equal the plaintext key")
	}
	if HashKey(plaintext) != hash {
		t.Fatal("HashKey must reproduce the stored hash")
	}
}

func TestGenerateAPIKeyIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		plaintext, _, _, err := GenerateAPIKey()
		if err != nil {
			t.Fatalf("GenerateAPIKey returned error: %v", err)
		}
		if seen[plaintext] {
			t.Fatal("generated a duplicate key")
		}
		seen[plaintext] = true
	}
}
