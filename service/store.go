package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shekokarmahesh/contract-intel/model"
)

// ListOptions narrows and pages a contract listing.
type ListOptions struct {
	Status string // empty means all statuses
	Page   int    // 1-based
	Limit  int
}

// ContractStore persists contract documents. Every write is a partial update
// keyed by contract id and bumps the document's UpdatedAt timestamp.
type ContractStore interface {
	Save(ctx context.Context, c *model.Contract) error
	// Get returns the contract or nil when no record exists for the id.
	Get(ctx context.Context, id string) (*model.Contract, error)
	List(ctx context.Context, tenant string, opts ListOptions) ([]*model.Contract, int64, error)
	Delete(ctx context.Context, id string) error

	// MarkProcessing moves the document into the processing state at the
	// given progress checkpoint and clears any previous error.
	MarkProcessing(ctx context.Context, id string, progress int) error
	SetProgress(ctx context.Context, id string, progress int) error
	// MarkFailed records a failure; progress resets to 0.
	MarkFailed(ctx context.Context, id string, errMsg string) error
	// MarkCompleted writes the final extraction result at progress 100.
	MarkCompleted(ctx context.Context, id string, data *model.ExtractedData, score int, gaps []model.Gap, confidence map[string]float64) error

	// DeleteFailedBefore purges failed contracts uploaded before cutoff and
	// returns how many were removed.
	DeleteFailedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MemoryStore is an in-memory ContractStore, used for tests and for running
// without a database.
type MemoryStore struct {
	mu           sync.RWMutex
	contracts    map[string]*model.Contract
	maxContracts int // 0 = unlimited
}

// NewMemoryStore creates an in-memory store keeping at most maxContracts
// documents; older documents are evicted first.
func NewMemoryStore(maxContracts int) *MemoryStore {
	if maxContracts < 0 {
		maxContracts = 0
	}
	return &MemoryStore{
		contracts:    make(map[string]*model.Contract),
		maxContracts: maxContracts,
	}
}

func (s *MemoryStore) Save(_ context.Context, c *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	cp.UpdatedAt = time.Now()
	s.contracts[cp.ID] = &cp

	s.evictIfNeeded()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, tenant string, opts ListOptions) ([]*model.Contract, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []*model.Contract
	for _, c := range s.contracts {
		if c.Tenant != tenant {
			continue
		}
		if opts.Status != "" && c.Status != opts.Status {
			continue
		}
		cp := *c
		filtered = append(filtered, &cp)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UploadedAt.After(filtered[j].UploadedAt)
	})

	total := int64(len(filtered))
	page, limit := normalizePage(opts)
	start := (page - 1) * limit
	if start >= len(filtered) {
		return []*model.Contract{}, total, nil
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contracts, id)
	return nil
}

func (s *MemoryStore) MarkProcessing(_ context.Context, id string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		c.Status = model.StatusProcessing
		c.Progress = progress
		c.ErrorMsg = ""
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemoryStore) SetProgress(_ context.Context, id string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		c.Progress = progress
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		c.Status = model.StatusFailed
		c.Progress = 0
		c.ErrorMsg = errMsg
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, id string, data *model.ExtractedData, score int, gaps []model.Gap, confidence map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		now := time.Now()
		c.Status = model.StatusCompleted
		c.Progress = 100
		c.ExtractedData = data
		c.Score = score
		c.Gaps = gaps
		c.ConfidenceScores = confidence
		c.ErrorMsg = ""
		c.CompletedAt = &now
		c.UpdatedAt = now
	}
	return nil
}

func (s *MemoryStore) DeleteFailedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, c := range s.contracts {
		if c.Status == model.StatusFailed && c.UploadedAt.Before(cutoff) {
			delete(s.contracts, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored contracts.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}

// evictIfNeeded removes the oldest contracts once the store grows past
// maxContracts. Must be called with the lock held.
func (s *MemoryStore) evictIfNeeded() {
	if s.maxContracts <= 0 || len(s.contracts) <= s.maxContracts {
		return
	}

	all := make([]*model.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UploadedAt.Before(all[j].UploadedAt)
	})

	for i := 0; i < len(all)-s.maxContracts; i++ {
		delete(s.contracts, all[i].ID)
	}
}

func normalizePage(opts ListOptions) (page, limit int) {
	page = opts.Page
	if page < 1 {
		page = 1
	}
	limit = opts.Limit
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
