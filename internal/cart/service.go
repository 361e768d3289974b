package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type remoteCart interface {
	AddItemToCart(ctx context.Context, item catalog.CartItemPayload) error
}

type lineStore interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	FindByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) (*models.CartLine, error)
	Save(ctx context.Context, line *models.CartLine) error
	DeleteByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
	NextPosition(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service exposes cart state operations.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartLine, error)
	Items(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) error
	Clear(ctx context.Context, userID uuid.UUID) error
	Subtotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	lines  lineStore
	remote remoteCart
	log    *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(lines lineStore, remote remoteCart, log *logger.Logger) (Service, error) {
	if lines == nil {
		return nil, fmt.Errorf("cart line store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote cart client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{lines: lines, remote: remote, log: log}, nil
}

// AddItemInput captures one add-to-cart request.
type AddItemInput struct {
	ProductUUID uuid.UUID
	Name        string
	Price       decimal.Decimal
	Quantity    int
	SugarLevel  *enums.SugarLevel
	Image       *string
}

// AddItem records the item remotely, then folds it into the local cart.
// A matching (product, sugar level) line absorbs the quantity instead of
// producing a duplicate entry. Remote unreachability is tolerated; the
// local cart stays authoritative for display.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartLine, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to add items")
	}
	if input.ProductUUID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.SugarLevel != nil && !input.SugarLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sugar level")
	}

	payload := catalog.CartItemPayload{
		UserUUID:     userID.String(),
		ProductUUID:  input.ProductUUID.String(),
		Qty:          input.Quantity,
		ProductName:  input.Name,
		ProductPrice: input.Price,
	}
	if input.SugarLevel != nil {
		payload.SugarLevel = input.SugarLevel.String()
	}
	if input.Image != nil {
		payload.ProductImage = *input.Image
	}

	if err := s.remote.AddItemToCart(ctx, payload); err != nil {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeDependency {
			return nil, err
		}
		s.log.Warn(s.log.WithProductID(ctx, input.ProductUUID.String()), "remote cart unreachable, keeping local cart only")
	}

	existing, err := s.lines.FindByIdentity(ctx, userID, input.ProductUUID, input.SugarLevel)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "look up cart line")
	}
	if existing != nil {
		existing.Quantity = existing.EffectiveQuantity() + input.Quantity
		existing.Price = input.Price
		if err := s.lines.Save(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
		}
		return existing, nil
	}

	position, err := s.lines.NextPosition(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign cart position")
	}

	line := &models.CartLine{
		UserUUID:    userID,
		ProductUUID: input.ProductUUID,
		SugarLevel:  input.SugarLevel,
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
		Position:    position,
	}
	if err := s.lines.Save(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart line")
	}
	return line, nil
}

func (s *service) Items(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	lines, err := s.lines.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart lines")
	}
	return lines, nil
}

// Count totals the quantities across all lines; rows with a missing
// quantity count as one.
func (s *service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, nil
	}
	lines, err := s.lines.ListForUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart lines")
	}
	total := 0
	for _, line := range lines {
		total += line.EffectiveQuantity()
	}
	return total, nil
}

// RemoveItem deletes the line matching the cart identity, not a display
// index, so concurrent renders cannot remove the wrong product.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.lines.DeleteByIdentity(ctx, userID, productID, sugar); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}
	if err := s.lines.DeleteForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

// Subtotal sums price times quantity across the cart.
func (s *service) Subtotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	lines, err := s.Items(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.EffectiveQuantity()))))
	}
	return total, nil
}
