// Package code 生成数字配对码
//
// 配对码是发送方与接收方共享的秘密，由发送方口头或其他带外方式告知接收方。
// 每一位都来自密码学安全的随机源（crypto/rand），因此不可预测。
package code

import (
	"github.com/sethvargo/go-password/password"
	"golang.org/x/xerrors"
)

// Generate returns a string of exactly length decimal digits. Every digit is
// an independent uniform draw from crypto/rand.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", xerrors.Errorf("invalid code length %d: must be at least 1", length)
	}

	// digits only: no letters or symbols, repeats allowed
	code, err := password.Generate(length, length, 0, true, true)
	if err != nil {
		return "", xerrors.Errorf("failed to generate code: %w", err)
	}
	return code, nil
}

// IsNumeric reports whether s is a non-empty string of decimal digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
