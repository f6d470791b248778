package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const tempPasswordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword returns a cryptographically random alphanumeric
// password of the given length. The plaintext is handed to the user exactly
// once; only its hash is stored.
func GenerateTempPassword(length int) (string, error) {
	password := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordChars)))

	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		password[i] = tempPasswordChars[n.Int64()]
	}

	return string(password), nil
}

func HashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
