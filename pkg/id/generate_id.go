package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a random 32-char lowercase hex identifier. Loan and
// transaction references use it so numeric row ids never leak through
// the API.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
