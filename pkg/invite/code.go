// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// CodeAlphabet leaves out 0, 1, I and O.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const DefaultCodeLength = 6

// GenerateCode returns a random code of n characters from CodeAlphabet.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		n = DefaultCodeLength
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	// len(CodeAlphabet) divides 256, so the modulo keeps the distribution uniform.
	for i, b := range buf {
		buf[i] = CodeAlphabet[int(b)%len(CodeAlphabet)]
	}

	return string(buf), nil
}

// NormalizeCode trims and uppercases a code as typed by a user.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
