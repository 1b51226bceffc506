package oee

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"oee-dashboard/internal/storage"
)

type DatasetStore interface {
	Dataset(ctx context.Context, id string) (*storage.Dataset, error)
}

const maxCachedViews = 64

// ViewService serves filtered, metric-augmented views of a dataset.
// Views are memoized per (dataset, filter) purely as an optimization:
// the underlying records are immutable, so a cache hit and a recompute
// are indistinguishable. singleflight collapses concurrent recomputes
// of the same view.
type ViewService struct {
	store DatasetStore
	sf    singleflight.Group

	mu    sync.RWMutex
	views map[string][]storage.MetricRecord
}

func NewViewService(store DatasetStore) *ViewService {
	return &ViewService{
		store: store,
		views: make(map[string][]storage.MetricRecord),
	}
}

// View returns the metric rows of the dataset after applying the filter.
// Callers must treat the returned slice as read-only.
func (s *ViewService) View(ctx context.Context, datasetID string, f storage.Filter) ([]storage.MetricRecord, error) {
	const op = "service.oee.View"

	key := datasetID + "|" + f.Key()

	s.mu.RLock()
	view, ok := s.views[key]
	s.mu.RUnlock()
	if ok {
		return view, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ds, err := s.store.Dataset(ctx, datasetID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		view := Compute(ApplyFilter(ds.Records, f))

		s.mu.Lock()
		if len(s.views) >= maxCachedViews {
			s.views = make(map[string][]storage.MetricRecord)
		}
		s.views[key] = view
		s.mu.Unlock()

		return view, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]storage.MetricRecord), nil
}
