package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword salts and hashes plaintext; every call produces a different
// digest for the same input.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword reports whether plain matches the stored digest. A
// malformed digest compares the same as a wrong password.
func ComparePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
