package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt hash stored in the driver record. The
// cost comes from AUTH_BCRYPT_COST.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored hash.
// Returns a non-nil error on mismatch.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
