// Package repository implements data access layer for the code store
package repository

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/drawkit/luckydraw/models"
	"github.com/drawkit/luckydraw/utils"
)

// SaveResult reports the outcome of an append attempt. Append never returns an
// error: duplicates and I/O failures are both carried in the result so the
// caller can decide whether to retry with a new code.
type SaveResult struct {
	Saved     bool
	Duplicate bool
	Record    *models.CodeRecord
	Message   string
}

// CodeRepository is the durable record of all previously saved codes
type CodeRepository interface {
	LoadAll() []models.CodeRecord
	Exists(code string) bool
	Append(code, codeType string) SaveResult
	Clear() error
	Count() int
}

// FileCodeRepository backs the store with a single pretty-printed JSON array.
// The whole document is read on every query and rewritten on every append; the
// known-code set mirrors the file and is updated under the same lock as every
// write, so the two cannot diverge within this process.
type FileCodeRepository struct {
	mu    sync.Mutex
	path  string
	known map[string]struct{}
}

// NewFileCodeRepository creates a repository backed by the JSON file at path
// and seeds the known-code set from its current contents.
func NewFileCodeRepository(path string) CodeRepository {
	r := &FileCodeRepository{
		path:  path,
		known: make(map[string]struct{}),
	}
	for _, rec := range r.load() {
		r.known[rec.Code] = struct{}{}
	}
	return r
}

// LoadAll returns every persisted record in file order. An absent file yields
// an empty slice; a corrupt file is logged and treated the same way, since a
// crash mid-rewrite must not take the whole service down.
func (r *FileCodeRepository) LoadAll() []models.CodeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Exists reports whether the exact code is already persisted
func (r *FileCodeRepository) Exists(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.known[code]; ok {
		return true
	}
	for _, rec := range r.load() {
		if rec.Code == code {
			return true
		}
	}
	return false
}

// Append persists a new record with id = count+1 and generatedAt = now. The
// read-check-append-write sequence runs as one critical section.
func (r *FileCodeRepository) Append(code, codeType string) SaveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	if _, ok := r.known[code]; ok {
		return SaveResult{Duplicate: true, Message: "code already exists"}
	}
	for _, rec := range records {
		if rec.Code == code {
			return SaveResult{Duplicate: true, Message: "code already exists"}
		}
	}

	record := models.CodeRecord{
		Code:        code,
		Type:        codeType,
		GeneratedAt: utils.UTCNow(),
		ID:          len(records) + 1,
	}
	records = append(records, record)

	if err := r.save(records); err != nil {
		return SaveResult{Message: err.Error()}
	}

	r.known[code] = struct{}{}
	return SaveResult{Saved: true, Record: &record}
}

// Clear deletes the backing file and empties the known-code set. Removal
// errors, including the file being absent, propagate to the caller.
func (r *FileCodeRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil {
		return err
	}
	r.known = make(map[string]struct{})
	return nil
}

// Count returns the number of known codes
func (r *FileCodeRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.known)
}

func (r *FileCodeRepository) load() []models.CodeRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read code store %s: %v", r.path, err)
		}
		return []models.CodeRecord{}
	}

	var records []models.CodeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Failed to parse code store %s, treating as empty: %v", r.path, err)
		return []models.CodeRecord{}
	}
	return records
}

func (r *FileCodeRepository) save(records []models.CodeRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(r.path, data, 0o644)
}
