package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

const (
	otpMin = 100000
	otpMax = 999999
)

var otpSpan = big.NewInt(otpMax - otpMin + 1)

// GenerateOTPCode returns a uniformly random six-digit code in
// [100000, 999999] drawn from crypto/rand. Codes never start with zero.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("error generating otp code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// IsOTPCode reports whether s has the shape of a generated code.
func IsOTPCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= otpMin && n <= otpMax
}
