// Package models contains the domain data structures persisted by the service
package models

import (
	"time"
)

// Code type constants
const (
	CodeTypeAlphabetic   = "alphabetic"
	CodeTypeAlphanumeric = "alphanumeric"
)

// Charsets for each code type. Codes are always uppercase.
const (
	CharsetAlphabetic   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetAlphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeRecord represents one persisted generated code
type CodeRecord struct {
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	ID          int       `json:"id"`
}

// CharsetFor returns the charset for a code type, and whether the type is known
func CharsetFor(codeType string) (string, bool) {
	switch codeType {
	case CodeTypeAlphabetic:
		return CharsetAlphabetic, true
	case CodeTypeAlphanumeric:
		return CharsetAlphanumeric, true
	default:
		return "", false
	}
}

// IsValidCodeType reports whether the given string is a recognized code type
func IsValidCodeType(codeType string) bool {
	_, ok := CharsetFor(codeType)
	return ok
}
