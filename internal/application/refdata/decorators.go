package refdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteGuard vetoes deletion of a key that other records still reference.
// It returns shared.ErrInUse (or another conflict) to block the delete.
type DeleteGuard func(ctx context.Context, companyID uuid.UUID, key string) error

type guardedService[T any] struct {
	Service[T]
	guard DeleteGuard
}

// WithDeleteGuard wraps svc so Delete consults guard after the role check
// and before the record is removed. The guard and the delete are separate
// statements; a reference written between them is not detected, and any
// guard error, including a failed lookup, leaves the record in place.
func WithDeleteGuard[T any](svc Service[T], guard DeleteGuard) Service[T] {
	return &guardedService[T]{Service: svc, guard: guard}
}

func (g *guardedService[T]) Delete(ctx context.Context, caller Caller, key string) error {
	if err := g.Authorize(caller, OpDelete); err != nil {
		return err
	}
	if normalized := g.NormalizeKey(key); normalized != "" {
		if err := g.guard(ctx, caller.CompanyID, normalized); err != nil {
			return err
		}
	}
	return g.Service.Delete(ctx, caller, key)
}

type cachedService[T any] struct {
	Service[T]
	cache  shared.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// WithListCache wraps svc with a read-through cache of each company's list.
// Any successful write invalidates that company's entry. Cache failures are
// logged and fall through to the wrapped service.
func WithListCache[T any](svc Service[T], cache shared.Cache, ttl time.Duration, logger *zap.Logger) Service[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedService[T]{
		Service: svc,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With(zap.String("entity", svc.Descriptor().ModelName)),
	}
}

// ListCacheKey is the cache key of a company's list for model
func ListCacheKey(model string, companyID uuid.UUID) string {
	return "refdata:" + model + ":" + companyID.String()
}

func (s *cachedService[T]) key(companyID uuid.UUID) string {
	return ListCacheKey(s.Descriptor().ModelName, companyID)
}

func (s *cachedService[T]) List(ctx context.Context, caller Caller) ([]T, error) {
	if err := s.Authorize(caller, OpRead); err != nil {
		return nil, err
	}

	key := s.key(caller.CompanyID)
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("list cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		s.logger.Warn("discarding undecodable list cache entry", zap.String("key", key))
	}

	items, err := s.Service.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("list cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (s *cachedService[T]) Create(ctx context.Context, caller Caller, rec *T) (*T, error) {
	created, err := s.Service.Create(ctx, caller, rec)
	if err == nil {
		s.invalidate(ctx, caller.CompanyID)
	}
	return created, err
}

func (s *cachedService[T]) Update(ctx context.Context, caller Caller, oldKey string, next *T) (*T, error) {
	updated, err := s.Service.Update(ctx, caller, oldKey, next)
	if err == nil {
		s.invalidate(ctx, caller.CompanyID)
	}
	return updated, err
}

func (s *cachedService[T]) Delete(ctx context.Context, caller Caller, key string) error {
	err := s.Service.Delete(ctx, caller, key)
	if err == nil {
		s.invalidate(ctx, caller.CompanyID)
	}
	return err
}

func (s *cachedService[T]) invalidate(ctx context.Context, companyID uuid.UUID) {
	key := s.key(companyID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("list cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
