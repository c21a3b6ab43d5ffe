package services

import (
	"crypto/rand"
	"math/big"
)

const (
	cartCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	cartCodeLength   = 11

	orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderCodeLength   = 10

	// Storage enforces code uniqueness; collisions are regenerated up to
	// this many times before the operation gives up.
	codeAttempts = 5
)

func randomCode(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is unrecoverable
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code)
}

func newCartCode() string {
	return randomCode(cartCodeAlphabet, cartCodeLength)
}

func newOrderCode() string {
	return randomCode(orderCodeAlphabet, orderCodeLength)
}
