package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateRandomToken returns an alphanumeric code of the given length.
func GenerateRandomToken(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	token := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		token[i] = charset[n.Int64()]
	}
	return string(token), nil
}
