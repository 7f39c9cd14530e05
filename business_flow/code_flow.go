// Package businessflow contains use cases for code generation, listing, statistics, and reset
package businessflow

import (
	"context"
	"log"
	"strings"

	"github.com/drawkit/luckydraw/app/dto"
	"github.com/drawkit/luckydraw/app/services"
	"github.com/drawkit/luckydraw/models"
	"github.com/drawkit/luckydraw/repository"
	"github.com/drawkit/luckydraw/utils"
)

// CodeFlow defines the use cases over the code store
type CodeFlow interface {
	GenerateCode(ctx context.Context, req *dto.GenerateCodeRequest, metadata *ClientMetadata) (*dto.GenerateCodeResponse, error)
	ListCodes(ctx context.Context) (*dto.ListCodesResponse, error)
	ListCodeDetails(ctx context.Context) ([]dto.CodeDetail, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	Reset(ctx context.Context, metadata *ClientMetadata) (*dto.ResetResponse, error)
}

type CodeFlowImpl struct {
	repo      repository.CodeRepository
	generator services.CodeGenerator
}

func NewCodeFlow(repo repository.CodeRepository, generator services.CodeGenerator) CodeFlow {
	return &CodeFlowImpl{repo: repo, generator: generator}
}

// GenerateCode produces one new code of the requested type and persists it.
// Every code goes through the store's append-with-dedup; on a collision the
// flow regenerates, bounded at MaxGenerationAttempts.
func (f *CodeFlowImpl) GenerateCode(ctx context.Context, req *dto.GenerateCodeRequest, metadata *ClientMetadata) (*dto.GenerateCodeResponse, error) {
	charset, ok := models.CharsetFor(req.Type)
	if !ok {
		return nil, NewBusinessError("INVALID_CODE_TYPE", "Type must be alphabetic or alphanumeric", ErrInvalidCodeType)
	}

	for attempt := 1; attempt <= utils.MaxGenerationAttempts; attempt++ {
		code, err := f.generator.Generate(charset, utils.CodeLength)
		if err != nil {
			return nil, NewBusinessError("CODE_GENERATION_FAILED", "Random code generation failed", ErrCodeGenerationFailed)
		}
		code = strings.ToUpper(code)

		result := f.repo.Append(code, req.Type)
		if result.Duplicate {
			log.Printf("Generated duplicate code %s (attempt %d/%d), retrying", code, attempt, utils.MaxGenerationAttempts)
			continue
		}
		if !result.Saved {
			return nil, NewBusinessError("STORAGE_WRITE_FAILED", result.Message, ErrStorageWriteFailed)
		}

		return &dto.GenerateCodeResponse{
			Code:           result.Record.Code,
			Type:           result.Record.Type,
			TotalGenerated: f.repo.Count(),
			Message:        "Code generated successfully",
		}, nil
	}

	return nil, NewBusinessError("GENERATION_EXHAUSTED", "Could not generate a unique code", ErrGenerationExhausted)
}

// ListCodes returns the compact projection of every persisted record
func (f *CodeFlowImpl) ListCodes(ctx context.Context) (*dto.ListCodesResponse, error) {
	records := f.repo.LoadAll()

	codes := make([]dto.CodeItem, 0, len(records))
	for _, r := range records {
		codes = append(codes, dto.CodeItem{Code: r.Code, Type: r.Type})
	}

	return &dto.ListCodesResponse{Codes: codes, Total: len(codes)}, nil
}

// ListCodeDetails returns every persisted record including id and timestamp
func (f *CodeFlowImpl) ListCodeDetails(ctx context.Context) ([]dto.CodeDetail, error) {
	records := f.repo.LoadAll()

	details := make([]dto.CodeDetail, 0, len(records))
	for _, r := range records {
		details = append(details, dto.CodeDetail{
			Code:        r.Code,
			Type:        r.Type,
			GeneratedAt: r.GeneratedAt,
			ID:          r.ID,
		})
	}
	return details, nil
}

// GetStats aggregates the store: total, per-type counts, and the timestamps
// of the first and last records in file order.
func (f *CodeFlowImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	records := f.repo.LoadAll()

	stats := &dto.StatsResponse{TotalCodes: len(records)}
	for _, r := range records {
		switch r.Type {
		case models.CodeTypeAlphabetic:
			stats.Alphabetic++
		case models.CodeTypeAlphanumeric:
			stats.Alphanumeric++
		}
	}

	if len(records) > 0 {
		stats.FirstGenerated = utils.ToPtr(records[0].GeneratedAt)
		stats.LastGenerated = utils.ToPtr(records[len(records)-1].GeneratedAt)
	}
	return stats, nil
}

// Reset deletes the backing store and the known-code set. Deletion failures,
// including an already-absent store, surface as a storage error.
func (f *CodeFlowImpl) Reset(ctx context.Context, metadata *ClientMetadata) (*dto.ResetResponse, error) {
	if err := f.repo.Clear(); err != nil {
		return nil, NewBusinessError("STORAGE_RESET_FAILED", err.Error(), ErrStorageResetFailed)
	}

	if metadata != nil {
		log.Printf("Code store reset by %s", metadata.IPAddress)
	}
	return &dto.ResetResponse{Message: "All codes have been reset"}, nil
}
