package normalizing

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashLength é o tamanho em caracteres de um digest SHA-256 em hexadecimal
const HashLength = sha256.Size * 2

// Hash calcula o SHA-256 em hexadecimal minúsculo dos bytes UTF-8 de raw
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// IsHashed indica se o valor já está no formato de digest (64 caracteres hex minúsculos)
func IsHashed(value string) bool {
	if len(value) != HashLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
