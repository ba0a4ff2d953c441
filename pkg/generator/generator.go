package generator

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	userIDLength    = 24
	sessionIDLength = 36
)

func GenerateRandomID(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		result[i] = alphabet[randomIndex.Int64()]
	}

	return string(result), nil
}

// NewUserID returns an opaque identifier for a freshly registered user.
func NewUserID() (string, error) {
	return GenerateRandomID(userIDLength)
}

// NewSessionID returns an opaque session token. Longer than a user ID since
// the token itself is the only thing guarding the session.
func NewSessionID() (string, error) {
	return GenerateRandomID(sessionIDLength)
}
