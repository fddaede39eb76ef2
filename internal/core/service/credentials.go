package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialRegistry is the fixed set of login credentials the issuer checks
// against. Keys are lowercase emails, values bcrypt hashes. Where this comes
// from in a real deployment is out of scope; here it is seeded at startup.
type CredentialRegistry struct {
	hashes map[string][]byte
}

// NewCredentialRegistry builds a registry from plaintext passwords, hashing
// each with bcrypt. Intended for seeding the demo dataset and tests.
func NewCredentialRegistry(plaintext map[string]string) (*CredentialRegistry, error) {
	hashes := make(map[string][]byte, len(plaintext))
	for email, password := range plaintext {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashes[strings.ToLower(email)] = hash
	}
	return &CredentialRegistry{hashes: hashes}, nil
}

// Verify reports whether the email/password pair matches a registered
// credential. Email comparison is case-insensitive.
func (r *CredentialRegistry) Verify(email, password string) bool {
	hash, ok := r.hashes[strings.ToLower(email)]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
