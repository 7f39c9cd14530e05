package dto

import (
	"time"
)

// GenerateCodeRequest is the payload for POST /api/generate.
// Only the two enumerated types are accepted; everything else is rejected
// before any processing.
type GenerateCodeRequest struct {
	Type string `json:"type" validate:"required,oneof=alphabetic alphanumeric"`
}

// GenerateCodeResponse reports one freshly generated and persisted code
type GenerateCodeResponse struct {
	Code           string `json:"code"`
	Type           string `json:"type"`
	TotalGenerated int    `json:"totalGenerated"`
	Message        string `json:"message"`
}

// CodeItem is the compact listing projection of a record
type CodeItem struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// ListCodesResponse wraps the compact listing for GET /api/codes
type ListCodesResponse struct {
	Codes []CodeItem `json:"codes"`
	Total int        `json:"total"`
}

// CodeDetail is the full record projection for GET /api/codes/details
type CodeDetail struct {
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	ID          int       `json:"id"`
}

// StatsResponse aggregates the store for GET /api/stats. First/last follow
// file order, not timestamp order; both are null when the store is empty.
type StatsResponse struct {
	TotalCodes     int        `json:"totalCodes"`
	Alphabetic     int        `json:"alphabetic"`
	Alphanumeric   int        `json:"alphanumeric"`
	FirstGenerated *time.Time `json:"firstGenerated"`
	LastGenerated  *time.Time `json:"lastGenerated"`
}

// ResetResponse confirms a successful store reset
type ResetResponse struct {
	Message string `json:"message"`
}
