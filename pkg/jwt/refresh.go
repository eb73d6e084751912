package jwt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RefreshToken token opaco de longa duração usado para obter novos access tokens.
// Raw volta ao cliente; na base fica somente o hash SHA-256.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// NewRefreshToken devolve um token aleatório criptograficamente seguro e sua expiração.
func NewRefreshToken(ttlHours int) (RefreshToken, error) {
	raw, err := randomHex(32) // 32 bytes -> 64 chars hex
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour),
	}, nil
}

// HashRefreshRaw devolve o hash SHA-256 do token em hex. Só o hash é persistido,
// para que um vazamento da base não permita renovar sessões.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
