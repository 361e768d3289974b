package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type remoteStock interface {
	UpdateStock(ctx context.Context, productID string, stock int) error
}

type shadowStore interface {
	Get(ctx context.Context, productID uuid.UUID) (*int, error)
	Set(ctx context.Context, productID uuid.UUID, stock int) error
}

type orderRecorder interface {
	Record(ctx context.Context, record *models.OrderRecord) error
}

// Service owns detail-page stock state and the order confirmation flow.
type Service interface {
	EffectiveStock(ctx context.Context, productID uuid.UUID, remoteStock *int) (*int, error)
	ConfirmOrder(ctx context.Context, userID uuid.UUID, input ConfirmInput) (*ConfirmResult, error)
}

type service struct {
	shadow  shadowStore
	remote  remoteStock
	history orderRecorder
	log     *logger.Logger
}

// NewService builds a stock service backed by the provided stack.
func NewService(shadow shadowStore, remote remoteStock, history orderRecorder, log *logger.Logger) (Service, error) {
	if shadow == nil {
		return nil, fmt.Errorf("shadow stock store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote stock client required")
	}
	if history == nil {
		return nil, fmt.Errorf("order recorder required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{shadow: shadow, remote: remote, history: history, log: log}, nil
}

// EffectiveStock resolves what the detail page should gate against: the
// locally cached shadow wins over the remote snapshot because it reflects
// orders the server may not have acknowledged yet.
func (s *service) EffectiveStock(ctx context.Context, productID uuid.UUID, remoteStock *int) (*int, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	cached, err := s.shadow.Get(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read shadow stock")
	}
	if cached != nil {
		return cached, nil
	}
	return remoteStock, nil
}

// ConfirmInput captures one detail-page order confirmation.
type ConfirmInput struct {
	ProductUUID uuid.UUID
	ProductName string
	Kind        enums.ProductKind
	Price       decimal.Decimal
	Quantity    int
	SugarLevel  *enums.SugarLevel
	RemoteStock *int
}

// ConfirmResult reports the post-confirmation state.
type ConfirmResult struct {
	Stock    *int
	Total    decimal.Decimal
	Quantity QuantityState
}

// ConfirmOrder commits a detail-page order in two phases: decrement the
// local shadow, then push the new count to the server. An explicit server
// rejection rolls the shadow back; an unreachable server keeps the local
// decrement so the page cannot oversell while offline.
func (s *service) ConfirmOrder(ctx context.Context, userID uuid.UUID, input ConfirmInput) (*ConfirmResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to order")
	}
	if input.ProductUUID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	current, err := s.EffectiveStock(ctx, input.ProductUUID, input.RemoteStock)
	if err != nil {
		return nil, err
	}

	var newStock *int
	if current != nil {
		if input.Quantity > *current {
			return nil, pkgerrors.New(pkgerrors.CodeOutOfStock,
				fmt.Sprintf("only %d left in stock", *current))
		}

		remaining := *current - input.Quantity
		if err := s.shadow.Set(ctx, input.ProductUUID, remaining); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve shadow stock")
		}

		if err := s.remote.UpdateStock(ctx, input.ProductUUID.String(), remaining); err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodeDependency {
				s.log.Warn(s.log.WithProductID(ctx, input.ProductUUID.String()),
					"remote stock update unreachable, keeping local decrement")
			} else {
				if rollbackErr := s.shadow.Set(ctx, input.ProductUUID, *current); rollbackErr != nil {
					s.log.Error(ctx, "shadow stock rollback failed", rollbackErr)
				}
				return nil, err
			}
		}
		newStock = &remaining
	}

	record := &models.OrderRecord{
		UserUUID:    userID,
		ProductUUID: input.ProductUUID,
		ProductName: input.ProductName,
		Kind:        input.Kind,
		Quantity:    input.Quantity,
		SugarLevel:  input.SugarLevel,
		Total:       input.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
	}
	if err := s.history.Record(ctx, record); err != nil {
		s.log.Error(ctx, "order history append failed", err)
	}

	return &ConfirmResult{
		Stock:    newStock,
		Total:    record.Total,
		Quantity: NewQuantityState(newStock),
	}, nil
}
