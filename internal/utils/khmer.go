// Package utils holds shared helpers for Khmer text handling, TOML parsing and filesystem checks.
package utils

import (
	"strings"
	"unicode"
)

// IsKhmer checks if a rune falls inside the Khmer Unicode block
func IsKhmer(r rune) bool {
	return r >= 0x1780 && r <= 0x17FF
}

// IsKhmerDigit checks if a rune is one of the Khmer digits ០-៩
func IsKhmerDigit(r rune) bool {
	return r >= 0x17E0 && r <= 0x17E9
}

// HasKhmer checks if a string contains at least one Khmer rune
func HasKhmer(s string) bool {
	for _, r := range s {
		if IsKhmer(r) {
			return true
		}
	}
	return false
}

// IsOnlyDigits checks if a string consists entirely of digits,
// counting both ASCII and Khmer numerals
func IsOnlyDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !IsKhmerDigit(r) {
			return false
		}
	}
	return true
}

// DigitValue maps a single-rune key string to its numeric value.
// Accepts ASCII '1'-'9' and Khmer '១'-'៩'; anything else returns 0.
func DigitValue(s string) int {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0
	}
	r := runes[0]
	switch {
	case r >= '1' && r <= '9':
		return int(r - '0')
	case r >= 0x17E1 && r <= 0x17E9:
		return int(r - 0x17E0)
	}
	return 0
}

// IsValidInput checks if input should be sent out for predictions.
// Returns false for empty strings and strings that are only numerals,
// since the model has nothing useful to say about those.
func IsValidInput(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return false
	}
	if IsOnlyDigits(s) {
		return false
	}
	return true
}
