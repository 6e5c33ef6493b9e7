package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode returns n characters of A-Z0-9 drawn with crypto/rand (no modulo bias).
func RandomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// TransactionReference builds an id like "TXN-AB4D93KF".
func TransactionReference() (string, error) {
	code, err := RandomCode(8)
	if err != nil {
		return "", err
	}
	return "TXN-" + code, nil
}
