package utils

// Code generation constants
const (
	// CodeLength is the fixed length of every generated code
	CodeLength = 7

	// MaxGenerationAttempts bounds the regenerate-on-duplicate loop
	MaxGenerationAttempts = 10
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
