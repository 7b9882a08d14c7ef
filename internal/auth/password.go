package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt.DefaultCost (~100ms per hash) is fine for an interactive signup/login
// path; nothing here hashes in bulk.
const bcryptCost = bcrypt.DefaultCost

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
