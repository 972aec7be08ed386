// Package otp derives short numeric verification codes from a deployment
// secret and a fixed time window. The stored verification row remains the
// source of truth; the generator only decides what code gets stored.
package otp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// Window is the generation step: every code is stable within one window and
// changes at the boundary.
const Window = 5 * time.Minute

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: []byte(secret)}
}

// Generate returns the 6-digit code for (email, purpose) in the window
// containing at.
func (g *Generator) Generate(email, purpose string, at time.Time) string {
	window := at.UTC().Unix() / int64(Window/time.Second)

	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(email))
	mac.Write([]byte{'|'})
	mac.Write([]byte(purpose))
	mac.Write([]byte{'|'})
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(window))
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	// Dynamic truncation as in RFC 4226.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%06d", code%1_000_000)
}
