package refdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Record is the constraint on a reference entity: a pointer to T that exposes its audit block
type Record[T any] interface {
	*T
	AuditFields() *domain.Audit
}

// Option configures a Controller
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for operation failures
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock overrides the clock used for audit stamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Controller implements Service[T] for one reference entity
type Controller[T any, P Record[T]] struct {
	cfg    Config[T]
	store  Store[T]
	logger *zap.Logger
	now    func() time.Time
}

// New builds a controller from cfg. It fails when cfg is incomplete.
func New[T any, P Record[T]](cfg Config[T], store Store[T], opts ...Option) (*Controller[T, P], error) {
	cfg.applyDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("refdata config %q: store is required", cfg.ModelName)
	}

	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[T, P]{
		cfg:    cfg,
		store:  store,
		logger: o.logger.With(zap.String("entity", cfg.ModelName)),
		now:    o.now,
	}, nil
}

// MustNew is New for statically known configurations
func MustNew[T any, P Record[T]](cfg Config[T], store Store[T], opts ...Option) *Controller[T, P] {
	c, err := New[T, P](cfg, store, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Descriptor returns the effective configuration
func (c *Controller[T, P]) Descriptor() Config[T] {
	return c.cfg
}

// NormalizeKey applies the configured key normalizer
func (c *Controller[T, P]) NormalizeKey(value string) string {
	return c.cfg.FormatValue(value)
}

// Authorize checks that caller's role is allowed to perform op. The
// allowlist itself is never disclosed.
func (c *Controller[T, P]) Authorize(caller Caller, op Operation) error {
	if caller.CompanyID == uuid.Nil || caller.UserID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	if !c.cfg.AllowedRoles.For(op).Contains(caller.Role) {
		return shared.ErrForbidden
	}
	return nil
}

// List returns every record of the caller's company in configured order
func (c *Controller[T, P]) List(ctx context.Context, caller Caller) ([]T, error) {
	if err := c.Authorize(caller, OpRead); err != nil {
		return nil, c.fail(OpRead, caller, err)
	}

	items, err := c.store.FindMany(ctx, caller.CompanyID, c.order())
	if err != nil {
		return nil, c.fail(OpRead, caller, shared.NewInternalError("Failed to fetch "+c.cfg.EntityPlural, err))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create validates and stores a new record under its normalized key
func (c *Controller[T, P]) Create(ctx context.Context, caller Caller, rec *T) (*T, error) {
	if err := c.Authorize(caller, OpCreate); err != nil {
		return nil, c.fail(OpCreate, caller, err)
	}
	if rec == nil {
		return nil, c.fail(OpCreate, caller, c.badRequest(c.cfg.Label()+" data is required"))
	}
	// the stored key is what gets validated
	raw := c.cfg.Key.Get(rec)
	key := c.cfg.FormatValue(raw)
	if key == "" && raw != "" {
		return nil, c.fail(OpCreate, caller, c.badRequest(c.cfg.Label()+" is required"))
	}
	c.cfg.Key.Set(rec, key)
	if err := c.validate(rec); err != nil {
		return nil, c.fail(OpCreate, caller, err)
	}
	if key == "" {
		return nil, c.fail(OpCreate, caller, c.badRequest(c.cfg.Label()+" is required"))
	}

	if err := c.ensureAbsent(ctx, caller.CompanyID, key, "Failed to create "+c.cfg.LowerLabel()); err != nil {
		return nil, c.fail(OpCreate, caller, err)
	}

	P(rec).AuditFields().StampCreated(caller.CompanyID, caller.UserID, c.now().UTC())

	if err := c.store.Create(ctx, rec); err != nil {
		return nil, c.fail(OpCreate, caller, c.mapWriteError(err, key, "Failed to create "+c.cfg.LowerLabel()))
	}

	c.logger.Info("reference record created",
		zap.String("company_id", caller.CompanyID.String()),
		zap.String(c.cfg.Key.Field, key))
	return rec, nil
}

// Update replaces the record stored under oldKey with next, which may carry
// a different key. The replacement keeps the original creation stamps.
func (c *Controller[T, P]) Update(ctx context.Context, caller Caller, oldKey string, next *T) (*T, error) {
	if err := c.Authorize(caller, OpUpdate); err != nil {
		return nil, c.fail(OpUpdate, caller, err)
	}

	missingKeys := c.badRequest(fmt.Sprintf("Both old and new %s values are required", c.cfg.LowerLabel()))
	if next == nil {
		return nil, c.fail(OpUpdate, caller, missingKeys)
	}
	oldKey = c.cfg.FormatValue(oldKey)
	if oldKey == "" {
		return nil, c.fail(OpUpdate, caller, missingKeys)
	}
	rawNew := c.cfg.Key.Get(next)
	newKey := c.cfg.FormatValue(rawNew)
	if newKey == "" && rawNew != "" {
		return nil, c.fail(OpUpdate, caller, missingKeys)
	}
	c.cfg.Key.Set(next, newKey)
	if err := c.validate(next); err != nil {
		return nil, c.fail(OpUpdate, caller, err)
	}
	if newKey == "" {
		return nil, c.fail(OpUpdate, caller, missingKeys)
	}

	existing, err := c.find(ctx, caller.CompanyID, oldKey, "Failed to update "+c.cfg.LowerLabel())
	if err != nil {
		return nil, c.fail(OpUpdate, caller, err)
	}
	if newKey != oldKey {
		if err := c.ensureAbsent(ctx, caller.CompanyID, newKey, "Failed to update "+c.cfg.LowerLabel()); err != nil {
			return nil, c.fail(OpUpdate, caller, err)
		}
	}

	P(next).AuditFields().StampReplaced(*P(existing).AuditFields(), caller.UserID, c.now().UTC())

	if err := c.rekey(ctx, CompositeKey{CompanyID: caller.CompanyID, Value: oldKey}, next); err != nil {
		return nil, c.fail(OpUpdate, caller, c.mapRekeyError(err, oldKey, newKey))
	}

	c.logger.Info("reference record updated",
		zap.String("company_id", caller.CompanyID.String()),
		zap.String("old_key", oldKey),
		zap.String("new_key", newKey))
	return next, nil
}

// Delete removes the record stored under key
func (c *Controller[T, P]) Delete(ctx context.Context, caller Caller, key string) error {
	if err := c.Authorize(caller, OpDelete); err != nil {
		return c.fail(OpDelete, caller, err)
	}

	key = c.cfg.FormatValue(key)
	if key == "" {
		return c.fail(OpDelete, caller, c.badRequest(c.cfg.Key.ParamName()+" is required"))
	}

	ck := CompositeKey{CompanyID: caller.CompanyID, Value: key}
	if _, err := c.find(ctx, caller.CompanyID, key, "Failed to delete "+c.cfg.LowerLabel()); err != nil {
		return c.fail(OpDelete, caller, err)
	}
	if err := c.store.Delete(ctx, ck); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return c.fail(OpDelete, caller, c.notFound(key))
		}
		return c.fail(OpDelete, caller, shared.NewInternalError("Failed to delete "+c.cfg.LowerLabel(), err))
	}

	c.logger.Info("reference record deleted",
		zap.String("company_id", caller.CompanyID.String()),
		zap.String(c.cfg.Key.Field, key))
	return nil
}

// rekey deletes the record at oldKey and creates next in one transaction
func (c *Controller[T, P]) rekey(ctx context.Context, oldKey CompositeKey, next *T) error {
	return c.store.Transaction(ctx, func(tx Store[T]) error {
		if err := tx.Delete(ctx, oldKey); err != nil {
			return err
		}
		return tx.Create(ctx, next)
	})
}

func (c *Controller[T, P]) validate(rec *T) error {
	if details := c.cfg.Validate(rec); len(details) > 0 {
		return shared.NewValidationError("Invalid "+c.cfg.LowerLabel()+" data", details)
	}
	return nil
}

func (c *Controller[T, P]) find(ctx context.Context, companyID uuid.UUID, key, failMsg string) (*T, error) {
	rec, err := c.store.FindUnique(ctx, CompositeKey{CompanyID: companyID, Value: key})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, c.notFound(key)
		}
		return nil, shared.NewInternalError(failMsg, err)
	}
	return rec, nil
}

func (c *Controller[T, P]) ensureAbsent(ctx context.Context, companyID uuid.UUID, key, failMsg string) error {
	_, err := c.store.FindUnique(ctx, CompositeKey{CompanyID: companyID, Value: key})
	switch {
	case err == nil:
		return c.conflict(key)
	case errors.Is(err, shared.ErrNotFound):
		return nil
	default:
		return shared.NewInternalError(failMsg, err)
	}
}

// mapWriteError turns a unique violation into a conflict and anything else into an internal error
func (c *Controller[T, P]) mapWriteError(err error, key, failMsg string) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return c.conflict(key)
	}
	return shared.NewInternalError(failMsg, err)
}

func (c *Controller[T, P]) mapRekeyError(err error, oldKey, newKey string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return c.notFound(oldKey)
	case errors.Is(err, shared.ErrAlreadyExists):
		return c.conflict(newKey)
	default:
		return shared.NewInternalError("Failed to update "+c.cfg.LowerLabel(), err)
	}
}

func (c *Controller[T, P]) order() Order {
	return Order{Column: c.cfg.OrderByField, Desc: c.cfg.OrderDirection == Desc}
}

func (c *Controller[T, P]) badRequest(msg string) error {
	return shared.NewDomainError(shared.CodeInvalidInput, msg)
}

func (c *Controller[T, P]) notFound(key string) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("%s %s not found", c.cfg.Label(), key))
}

func (c *Controller[T, P]) conflict(key string) error {
	return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("%s %s already exists", c.cfg.Label(), key))
}

// fail logs err with the operation context and returns it unchanged
func (c *Controller[T, P]) fail(op Operation, caller Caller, err error) error {
	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.String("company_id", caller.CompanyID.String()),
		zap.String("user_id", caller.UserID.String()),
	}
	if de, ok := shared.AsDomainError(err); ok && de.Code != shared.CodeInternal {
		c.logger.Warn("reference operation rejected", append(fields, zap.String("code", de.Code), zap.String("reason", de.Message))...)
		return err
	}
	c.logger.Error("reference operation failed", append(fields, zap.Error(err), zap.NamedError("cause", errors.Unwrap(err)))...)
	return err
}
