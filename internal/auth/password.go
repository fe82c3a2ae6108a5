// ABOUTME: bcrypt password hashing and verification
// ABOUTME: Login failures burn a dummy compare to keep timing constant

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user does not exist, so a login
// attempt takes the same time whether or not the username is real.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye.IjPeGvGzjf1bxv38KIqCGEY/JcnOG6"

// HashPassword returns a bcrypt hash of the password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// burnCompare runs a bcrypt comparison against the dummy hash to maintain
// constant timing on the user-not-found path.
func burnCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
