// ABOUTME: Tests for plain-text and argon2id password hashers.
// ABOUTME: Covers round trips, salt uniqueness, and malformed hashes.
package auth

import (
	"strings"
	"testing"
)

func fastArgon2() *Argon2 {
	return &Argon2{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}
}

func TestPlainText(t *testing.T) {
	var h PlainText

	stored, err := h.Hash("pw")
	if err != nil || stored != "pw" {
		t.Fatalf("Hash = %q, %v", stored, err)
	}
	if ok, _ := h.Verify("pw", stored); !ok {
		t.Error("expected match")
	}
	if ok, _ := h.Verify("PW", stored); ok {
		t.Error("comparison must be case-sensitive")
	}
}

func TestArgon2RoundTrip(t *testing.T) {
	h := fastArgon2()

	stored, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(stored, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("unexpected encoding: %s", stored)
	}

	ok, err := h.Verify("correct horse", stored)
	if err != nil || !ok {
		t.Errorf("Verify(correct) = %v, %v", ok, err)
	}
	ok, err = h.Verify("battery staple", stored)
	if err != nil || ok {
		t.Errorf("Verify(wrong) = %v, %v", ok, err)
	}
}

func TestArgon2SaltsDiffer(t *testing.T) {
	h := fastArgon2()
	a, _ := h.Hash("pw")
	b, _ := h.Hash("pw")
	if a == b {
		t.Error("expected different hashes for the same password")
	}
}

func TestArgon2VerifyUsesStoredParams(t *testing.T) {
	stored, _ := fastArgon2().Hash("pw")

	// a hasher with different defaults still verifies old hashes
	ok, err := NewArgon2().Verify("pw", stored)
	if err != nil || !ok {
		t.Errorf("Verify with other params = %v, %v", ok, err)
	}
}

func TestArgon2VerifyMalformed(t *testing.T) {
	h := fastArgon2()
	tests := []string{
		"pw",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=x$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=a,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=256$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	}

	for _, stored := range tests {
		if _, err := h.Verify("pw", stored); err == nil {
			t.Errorf("Verify(%q) expected error", stored)
		}
	}
}

func TestIsArgon2Hash(t *testing.T) {
	if IsArgon2Hash("plain") {
		t.Error("plain text reported as argon2")
	}
	stored, _ := fastArgon2().Hash("pw")
	if !IsArgon2Hash(stored) {
		t.Error("argon2 hash not recognised")
	}
}

func TestMixedVerifiesBothSchemes(t *testing.T) {
	argonStored, _ := fastArgon2().Hash("pw")

	tests := []struct {
		name    string
		primary PasswordHasher
	}{
		{"plain primary", PlainText{}},
		{"argon2 primary", fastArgon2()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMixed(tt.primary)
			for _, stored := range []string{"pw", argonStored} {
				ok, err := m.Verify("pw", stored)
				if err != nil || !ok {
					t.Errorf("Verify(pw, %q) = %v, %v", stored, ok, err)
				}
				if ok, _ := m.Verify("nope", stored); ok {
					t.Errorf("Verify(nope, %q) succeeded", stored)
				}
			}
		})
	}
}

func TestMixedHashesWithPrimary(t *testing.T) {
	stored, err := NewMixed(fastArgon2()).Hash("pw")
	if err != nil || !IsArgon2Hash(stored) {
		t.Errorf("argon2 primary Hash = %q, %v", stored, err)
	}
	stored, err = NewMixed(PlainText{}).Hash("pw")
	if err != nil || stored != "pw" {
		t.Errorf("plain primary Hash = %q, %v", stored, err)
	}
}
