package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt digest. A fresh salt is generated
// on every call, so two hashes of the same plaintext never match.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the digest. A
// mismatch returns false, never an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
