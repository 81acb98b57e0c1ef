package utils

import (
	"crypto/rand"
	"fmt"
)

const (
	teamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	teamCodeLength   = 6
)

// GenerateTeamCode generates a random 6-character team code drawn from [A-Z0-9].
// Codes are compared case-insensitively; this always emits upper case.
func GenerateTeamCode() (string, error) {
	bytes := make([]byte, teamCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, teamCodeLength)
	for i, b := range bytes {
		code[i] = teamCodeAlphabet[int(b)%len(teamCodeAlphabet)]
	}

	return string(code), nil
}
