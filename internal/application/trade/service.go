package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	readers = identity.Roles(identity.AllRoles)
	writers = identity.Roles{identity.RoleAdmin, identity.RoleManager, identity.RoleSales}
)

// Service records purchases and sales against a company's counterparties
type Service struct {
	repo           trade.TransactionRepository
	counterparties refdata.Store[domain.Counterparty]
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new trade Service
func NewService(repo trade.TransactionRepository, counterparties refdata.Store[domain.Counterparty], logger *zap.Logger) *Service {
	return &Service{
		repo:           repo,
		counterparties: counterparties,
		logger:         logger,
		now:            time.Now,
	}
}

// CreatePurchase records a vehicle bought from a counterparty
func (s *Service) CreatePurchase(ctx context.Context, caller refdata.Caller, req CreateTransactionRequest) (*TransactionResponse, error) {
	return s.create(ctx, caller, trade.KindPurchase, req)
}

// CreateSale records a vehicle sold to a counterparty
func (s *Service) CreateSale(ctx context.Context, caller refdata.Caller, req CreateTransactionRequest) (*TransactionResponse, error) {
	return s.create(ctx, caller, trade.KindSale, req)
}

// ListPurchases returns the caller's purchases, newest first
func (s *Service) ListPurchases(ctx context.Context, caller refdata.Caller) ([]TransactionResponse, error) {
	return s.list(ctx, caller, trade.KindPurchase)
}

// ListSales returns the caller's sales, newest first
func (s *Service) ListSales(ctx context.Context, caller refdata.Caller) ([]TransactionResponse, error) {
	return s.list(ctx, caller, trade.KindSale)
}

// CounterpartyInUse blocks deletion of a counterparty referenced by any purchase or sale
func (s *Service) CounterpartyInUse(ctx context.Context, companyID uuid.UUID, key string) error {
	n, err := s.repo.CountByCounterparty(ctx, companyID, key)
	if err != nil {
		s.logger.Error("Failed to count counterparty references",
			zap.String("company_id", companyID.String()), zap.Error(err))
		return shared.NewInternalError("Failed to delete counterparty", err)
	}
	if n > 0 {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Counterparty %s is referenced by %d transaction(s)", key, n))
	}
	return nil
}

func (s *Service) create(ctx context.Context, caller refdata.Caller, kind trade.Kind, req CreateTransactionRequest) (*TransactionResponse, error) {
	if err := authorize(caller, writers); err != nil {
		return nil, err
	}
	if details := refdata.ValidateStruct(&req); len(details) > 0 {
		return nil, shared.NewValidationError("Invalid "+string(kind), details)
	}

	counterparty := domain.FormatKey(req.Counterparty)
	if _, err := s.counterparties.FindUnique(ctx, refdata.CompositeKey{CompanyID: caller.CompanyID, Value: counterparty}); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Counterparty "+counterparty+" not found")
		}
		s.logger.Error("Failed to look up counterparty", zap.String("company_id", caller.CompanyID.String()), zap.Error(err))
		return nil, shared.NewInternalError("Failed to create "+string(kind), err)
	}

	in := trade.NewTransactionInput{
		Kind:         kind,
		ChassisNo:    req.ChassisNo,
		Maker:        domain.FormatKey(req.Maker),
		Color:        domain.FormatKey(req.Color),
		Counterparty: counterparty,
		Amount:       req.Amount,
		Notes:        req.Notes,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	tx, err := trade.NewTransaction(caller.CompanyID, caller.UserID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to store transaction",
			zap.String("kind", string(kind)), zap.String("company_id", caller.CompanyID.String()), zap.Error(err))
		return nil, shared.NewInternalError("Failed to create "+string(kind), err)
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

func (s *Service) list(ctx context.Context, caller refdata.Caller, kind trade.Kind) ([]TransactionResponse, error) {
	if err := authorize(caller, readers); err != nil {
		return nil, err
	}
	txs, err := s.repo.List(ctx, caller.CompanyID, kind)
	if err != nil {
		s.logger.Error("Failed to list transactions",
			zap.String("kind", string(kind)), zap.String("company_id", caller.CompanyID.String()), zap.Error(err))
		return nil, shared.NewInternalError("Failed to fetch "+string(kind)+"s", err)
	}
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, ToTransactionResponse(&txs[i]))
	}
	return out, nil
}

func authorize(caller refdata.Caller, allowed identity.Roles) error {
	if caller.CompanyID == uuid.Nil || caller.UserID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	if !allowed.Contains(caller.Role) {
		return shared.ErrForbidden
	}
	return nil
}
