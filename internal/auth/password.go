// ABOUTME: Password hashers for the user directory.
// ABOUTME: PlainText keeps legacy plain-text entries; Argon2 stores argon2id hashes.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher turns a password into its stored form and checks a
// candidate password against a stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (bool, error)
}

// PlainText stores passwords unchanged. It reads directories written by
// earlier versions, which never hashed.
type PlainText struct{}

var _ PasswordHasher = PlainText{}

func (PlainText) Hash(password string) (string, error) {
	return password, nil
}

func (PlainText) Verify(password, stored string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}

// Argon2 hashes passwords with argon2id and encodes them in the PHC string format.
type Argon2 struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32 // ignored by Verify
	KeyLength   uint32
}

var _ PasswordHasher = (*Argon2)(nil)

// NewArgon2 returns OWASP-recommended argon2id parameters.
func NewArgon2() *Argon2 {
	return &Argon2{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (a *Argon2) Verify(password, stored string) (bool, error) {
	params, salt, key, err := decodeArgon2(stored)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

// Mixed hashes with Primary and verifies each stored value with the scheme
// that wrote it, so accounts created under one password_scheme keep
// working after the scheme changes.
type Mixed struct {
	Primary PasswordHasher
}

var _ PasswordHasher = Mixed{}

// NewMixed returns a Mixed hasher writing new passwords with primary.
func NewMixed(primary PasswordHasher) Mixed {
	return Mixed{Primary: primary}
}

func (m Mixed) Hash(password string) (string, error) {
	return m.Primary.Hash(password)
}

func (m Mixed) Verify(password, stored string) (bool, error) {
	if IsArgon2Hash(stored) {
		// parameters come from stored, not the receiver
		return (&Argon2{}).Verify(password, stored)
	}
	return PlainText{}.Verify(password, stored)
}

// IsArgon2Hash reports whether stored looks like an argon2id PHC string.
func IsArgon2Hash(stored string) bool {
	return strings.HasPrefix(stored, "$argon2id$")
}

func decodeArgon2(encoded string) (*Argon2, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("unsupported algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	params := &Argon2{}
	var p int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &p); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Iterations < 1 || params.Memory < 1 {
		return nil, nil, nil, errors.New("invalid parameters: m and t must be positive")
	}
	if p < 1 || p > 255 {
		return nil, nil, nil, fmt.Errorf("invalid parameters: p=%d out of range", p)
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(key) == 0 {
		return nil, nil, nil, errors.New("invalid hash: empty key")
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
