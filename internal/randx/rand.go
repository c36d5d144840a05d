// Package randx provides small helpers for generating random identifiers.
package randx

import (
	"crypto/rand"
	"encoding/hex"
)

// Hex generates a random hexadecimal string of size random bytes. The final
// string length is twice the size, since each byte expands to two hex
// characters. It returns an error if the random number generator fails.
func Hex(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
