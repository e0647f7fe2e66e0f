package app

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how stored credentials are produced at
// registration and checked at login.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, presented string) bool
}

// PlainVerifier stores passwords verbatim and compares them exactly, in
// constant time. This preserves the prototype's behavioral contract; it is
// not an endorsement of plaintext storage.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlainVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier hashes passwords with bcrypt.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
