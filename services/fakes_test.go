package services

import (
	"context"
	"sync"
	"time"

	"variant-export-service/models"
	"variant-export-service/repository"
)

type fakeCatalog struct {
	products map[int64]*models.Product
	variants map[int64]*models.Variant
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[int64]*models.Product{},
		variants: map[int64]*models.Variant{},
	}
}

func (f *fakeCatalog) addProduct(p *models.Product, variants ...*models.Variant) {
	for _, v := range variants {
		v.ParentID = p.ID
		f.variants[v.ID] = v
		p.VariationIDs = append(p.VariationIDs, v.ID)
	}
	f.products[p.ID] = p
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetVariant(ctx context.Context, id int64) (*models.Variant, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.variants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ExportGeneratedEvent
	err    error
}

func (f *fakePublisher) PublishExportGenerated(ctx context.Context, evt ExportGeneratedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return f.err
}

type fakeMetrics struct {
	counts map[string]int
	values map[string]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: map[string]int{}, values: map[string]float64{}}
}

func (f *fakeMetrics) IsEnabled() bool { return true }

func (f *fakeMetrics) RecordCount(ctx context.Context, name string, _ map[string]string) error {
	f.counts[name]++
	return nil
}

func (f *fakeMetrics) RecordValue(ctx context.Context, name string, value float64, _ map[string]string) error {
	f.values[name] += value
	return nil
}

type prefixResolver struct{}

func (prefixResolver) Resolve(ctx context.Context, key string) *string {
	u := "https://img.test/" + key
	return &u
}

// sequenceRand returns the queued values in order, then repeats the last one.
type sequenceRand struct {
	values []int
	i      int
}

func (s *sequenceRand) Intn(n int) int {
	v := s.values[s.i]
	if s.i < len(s.values)-1 {
		s.i++
	}
	return v % n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
