package businessflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/drawkit/luckydraw/app/dto"
	"github.com/drawkit/luckydraw/app/services"
	"github.com/drawkit/luckydraw/models"
	"github.com/drawkit/luckydraw/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns a fixed sequence of codes, repeating the last one
// once the sequence is exhausted.
type scriptedGenerator struct {
	codes []string
	next  int
}

func (g *scriptedGenerator) Generate(charset string, length int) (string, error) {
	if g.next < len(g.codes)-1 {
		code := g.codes[g.next]
		g.next++
		return code, nil
	}
	return g.codes[len(g.codes)-1], nil
}

func newTestRepo(t *testing.T) repository.CodeRepository {
	t.Helper()
	return repository.NewFileCodeRepository(filepath.Join(t.TempDir(), "codes.json"))
}

func TestGenerateCode(t *testing.T) {
	t.Run("ValidTypesProduceWellFormedCodes", func(t *testing.T) {
		repo := newTestRepo(t)
		flow := NewCodeFlow(repo, services.NewRandomCodeGenerator())

		tests := []struct {
			codeType string
			charset  string
		}{
			{codeType: models.CodeTypeAlphabetic, charset: models.CharsetAlphabetic},
			{codeType: models.CodeTypeAlphanumeric, charset: models.CharsetAlphanumeric},
		}

		for _, tt := range tests {
			t.Run(tt.codeType, func(t *testing.T) {
				res, err := flow.GenerateCode(context.Background(), &dto.GenerateCodeRequest{Type: tt.codeType}, nil)
				require.NoError(t, err)
				assert.Len(t, res.Code, 7)
				assert.Equal(t, tt.codeType, res.Type)
				for _, ch := range res.Code {
					assert.Contains(t, tt.charset, string(ch))
				}
				assert.True(t, repo.Exists(res.Code))
			})
		}

		// both codes persisted through the store
		assert.Equal(t, 2, repo.Count())
	})

	t.Run("InvalidTypeRejected", func(t *testing.T) {
		flow := NewCodeFlow(newTestRepo(t), services.NewRandomCodeGenerator())

		res, err := flow.GenerateCode(context.Background(), &dto.GenerateCodeRequest{Type: "numeric"}, nil)
		assert.Nil(t, res)
		assert.True(t, IsInvalidCodeType(err))
	})

	t.Run("RegeneratesOnDuplicate", func(t *testing.T) {
		repo := newTestRepo(t)
		require.True(t, repo.Append("AAAAAAA", models.CodeTypeAlphabetic).Saved)

		flow := NewCodeFlow(repo, &scriptedGenerator{codes: []string{"AAAAAAA", "BBBBBBB"}})

		res, err := flow.GenerateCode(context.Background(), &dto.GenerateCodeRequest{Type: models.CodeTypeAlphabetic}, nil)
		require.NoError(t, err)
		assert.Equal(t, "BBBBBBB", res.Code)
		assert.Equal(t, 2, res.TotalGenerated)
	})

	t.Run("ExhaustsRetriesOnPersistentCollision", func(t *testing.T) {
		repo := newTestRepo(t)
		require.True(t, repo.Append("AAAAAAA", models.CodeTypeAlphabetic).Saved)

		flow := NewCodeFlow(repo, &scriptedGenerator{codes: []string{"AAAAAAA"}})

		res, err := flow.GenerateCode(context.Background(), &dto.GenerateCodeRequest{Type: models.CodeTypeAlphabetic}, nil)
		assert.Nil(t, res)
		assert.True(t, IsGenerationExhausted(err))
		assert.Equal(t, 1, repo.Count())
	})
}

func TestListCodes(t *testing.T) {
	repo := newTestRepo(t)
	flow := NewCodeFlow(repo, services.NewRandomCodeGenerator())

	t.Run("EmptyStore", func(t *testing.T) {
		res, err := flow.ListCodes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Codes)
		assert.Empty(t, res.Codes)
	})

	t.Run("ProjectsCodeAndType", func(t *testing.T) {
		repo.Append("AAAAAAA", models.CodeTypeAlphabetic)
		repo.Append("BBBBBB1", models.CodeTypeAlphanumeric)

		res, err := flow.ListCodes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, dto.CodeItem{Code: "AAAAAAA", Type: models.CodeTypeAlphabetic}, res.Codes[0])
		assert.Equal(t, dto.CodeItem{Code: "BBBBBB1", Type: models.CodeTypeAlphanumeric}, res.Codes[1])
	})
}

func TestListCodeDetails(t *testing.T) {
	repo := newTestRepo(t)
	flow := NewCodeFlow(repo, services.NewRandomCodeGenerator())

	repo.Append("AAAAAAA", models.CodeTypeAlphabetic)

	details, err := flow.ListCodeDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "AAAAAAA", details[0].Code)
	assert.Equal(t, models.CodeTypeAlphabetic, details[0].Type)
	assert.Equal(t, 1, details[0].ID)
	assert.False(t, details[0].GeneratedAt.IsZero())
}

func TestGetStats(t *testing.T) {
	t.Run("EmptyStoreHasNullTimestamps", func(t *testing.T) {
		flow := NewCodeFlow(newTestRepo(t), services.NewRandomCodeGenerator())

		stats, err := flow.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalCodes)
		assert.Nil(t, stats.FirstGenerated)
		assert.Nil(t, stats.LastGenerated)
	})

	t.Run("CountsPerType", func(t *testing.T) {
		repo := newTestRepo(t)
		flow := NewCodeFlow(repo, services.NewRandomCodeGenerator())

		repo.Append("AAAAAAA", models.CodeTypeAlphabetic)
		repo.Append("BBBBBB1", models.CodeTypeAlphanumeric)
		repo.Append("CCCCCCC", models.CodeTypeAlphabetic)

		stats, err := flow.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalCodes)
		assert.Equal(t, 2, stats.Alphabetic)
		assert.Equal(t, 1, stats.Alphanumeric)
		require.NotNil(t, stats.FirstGenerated)
		require.NotNil(t, stats.LastGenerated)
		assert.False(t, stats.LastGenerated.Before(*stats.FirstGenerated))
	})
}

func TestReset(t *testing.T) {
	t.Run("ClearsStoreAndRestartsSequence", func(t *testing.T) {
		repo := newTestRepo(t)
		flow := NewCodeFlow(repo, services.NewRandomCodeGenerator())

		repo.Append("AAAAAAA", models.CodeTypeAlphabetic)

		res, err := flow.Reset(context.Background(), NewClientMetadata("127.0.0.1", "test"))
		require.NoError(t, err)
		assert.NotEmpty(t, res.Message)
		assert.Equal(t, 0, repo.Count())

		result := repo.Append("DDDDDDD", models.CodeTypeAlphabetic)
		require.True(t, result.Saved)
		assert.Equal(t, 1, result.Record.ID)
	})

	t.Run("AbsentStoreSurfacesStorageError", func(t *testing.T) {
		flow := NewCodeFlow(newTestRepo(t), services.NewRandomCodeGenerator())

		res, err := flow.Reset(context.Background(), nil)
		assert.Nil(t, res)
		assert.True(t, IsStorageResetFailed(err))
	})
}
