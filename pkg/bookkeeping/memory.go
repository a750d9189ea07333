package bookkeeping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store, used by tests and dry runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record), now: time.Now}
}

func (m *Memory) Create(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.FileName == "" {
		return errors.New("bookkeeping: file name is required")
	}
	r.Updated = m.now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.FileName] = r
	return nil
}

func (m *Memory) Get(ctx context.Context, fileName string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[fileName]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, fileName)
	}
	return r, nil
}

func (m *Memory) FindByPackage(ctx context.Context, packageID int64) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, r := range m.records {
		if r.PackageID == packageID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}

func (m *Memory) DeleteAll(ctx context.Context, fileNames []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range fileNames {
		delete(m.records, name)
	}
	return nil
}
