package id

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewToken returns n uppercase alphanumeric characters.
func NewToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	out := make([]byte, n)
	for i := range b {
		out[i] = tokenAlphabet[int(b[i])%len(tokenAlphabet)]
	}
	return string(out)
}

// NewApplicationRef returns the human-facing application identifier,
// e.g. "APP-7K2M9QW4XT".
func NewApplicationRef() string {
	return "APP-" + NewToken(10)
}

// NewLoanID returns "LN-<prefix>-<8 chars>", where prefix encodes the loan
// product (SL, SC, BC, BCR, or LN).
func NewLoanID(prefix string) string {
	return "LN-" + prefix + "-" + NewToken(8)
}
