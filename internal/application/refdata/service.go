package refdata

import "context"

// Service is the operation set exposed for one reference entity. Controller
// implements it; decorators wrap it to add caching or delete guards.
type Service[T any] interface {
	Descriptor() Config[T]
	Authorize(caller Caller, op Operation) error
	NormalizeKey(value string) string

	List(ctx context.Context, caller Caller) ([]T, error)
	Create(ctx context.Context, caller Caller, rec *T) (*T, error)
	Update(ctx context.Context, caller Caller, oldKey string, next *T) (*T, error)
	Delete(ctx context.Context, caller Caller, key string) error
}
