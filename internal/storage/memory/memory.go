package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"oee-dashboard/internal/storage"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// Store keeps uploaded datasets in memory. There is no persistence:
// the dashboard works on one upload at a time and a restart starts clean.
// Only the most recent maxDatasets uploads are retained.
type Store struct {
	mu          sync.RWMutex
	maxDatasets int
	order       []string
	datasets    map[string]*storage.Dataset
}

func New(maxDatasets int) *Store {
	if maxDatasets <= 0 {
		maxDatasets = 1
	}
	return &Store{
		maxDatasets: maxDatasets,
		datasets:    make(map[string]*storage.Dataset, maxDatasets),
	}
}

func (s *Store) SaveDataset(_ context.Context, fileName string, records []storage.ProductionRecord) (*storage.Dataset, error) {
	ds := &storage.Dataset{
		ID:         uuid.NewString(),
		FileName:   fileName,
		UploadedAt: time.Now(),
		Records:    records,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets[ds.ID] = ds
	s.order = append(s.order, ds.ID)
	for len(s.order) > s.maxDatasets {
		delete(s.datasets, s.order[0])
		s.order = s.order[1:]
	}

	return ds, nil
}

func (s *Store) Dataset(_ context.Context, id string) (*storage.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.datasets[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}
