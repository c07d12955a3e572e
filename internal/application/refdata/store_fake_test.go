package refdata

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memStore is a transactional in-memory Store keyed like the real unique index
type memStore[T any] struct {
	mu    sync.Mutex
	rows  map[CompositeKey]T
	key   func(*T) string
	audit func(*T) *domain.Audit

	findManyCalls int
	createErr     error // returned by Create when set
}

func newMemStore[T any, P Record[T]](key func(*T) string) *memStore[T] {
	return &memStore[T]{
		rows:  make(map[CompositeKey]T),
		key:   key,
		audit: func(rec *T) *domain.Audit { return P(rec).AuditFields() },
	}
}

func (s *memStore[T]) ck(rec *T) CompositeKey {
	return CompositeKey{CompanyID: s.audit(rec).CompanyID, Value: s.key(rec)}
}

func (s *memStore[T]) FindMany(_ context.Context, companyID uuid.UUID, order Order) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findManyCalls++
	var out []T
	for k, v := range s.rows {
		if k.CompanyID == companyID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		less := s.key(&out[i]) < s.key(&out[j])
		if order.Desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (s *memStore[T]) FindUnique(_ context.Context, key CompositeKey) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (s *memStore[T]) Create(_ context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	k := s.ck(rec)
	if _, exists := s.rows[k]; exists {
		return shared.ErrAlreadyExists
	}
	s.rows[k] = *rec
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, key CompositeKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[key]; !ok {
		return shared.ErrNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *memStore[T]) Transaction(ctx context.Context, fn func(tx Store[T]) error) error {
	s.mu.Lock()
	snapshot := make(map[CompositeKey]T, len(s.rows))
	for k, v := range s.rows {
		snapshot[k] = v
	}
	tx := &memStore[T]{rows: snapshot, key: s.key, audit: s.audit, createErr: s.createErr}
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.rows = tx.rows
	s.mu.Unlock()
	return nil
}

func (s *memStore[T]) count(companyID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.rows {
		if k.CompanyID == companyID {
			n++
		}
	}
	return n
}

// mockStore is a testify mock for injecting persistence failures
type mockStore[T any] struct {
	mock.Mock
}

func (m *mockStore[T]) FindMany(ctx context.Context, companyID uuid.UUID, order Order) ([]T, error) {
	args := m.Called(ctx, companyID, order)
	if v := args.Get(0); v != nil {
		return v.([]T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore[T]) FindUnique(ctx context.Context, key CompositeKey) (*T, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore[T]) Create(ctx context.Context, rec *T) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore[T]) Delete(ctx context.Context, key CompositeKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStore[T]) Transaction(ctx context.Context, fn func(tx Store[T]) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// mockCache is a testify mock of shared.Cache
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCache) Close() error {
	return nil
}
