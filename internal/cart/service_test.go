package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type stubLineStore struct {
	byIdentity map[string]*models.CartLine
	saved      []*models.CartLine
	deleted    int
	listErr    error
	deleteErr  error
}

func identityKey(productID uuid.UUID, sugar *enums.SugarLevel) string {
	if sugar == nil {
		return productID.String()
	}
	return productID.String() + "|" + sugar.String()
}

func (s *stubLineStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var lines []models.CartLine
	for _, line := range s.byIdentity {
		lines = append(lines, *line)
	}
	for _, line := range s.saved {
		lines = append(lines, *line)
	}
	return lines, nil
}

func (s *stubLineStore) FindByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) (*models.CartLine, error) {
	if s.byIdentity == nil {
		return nil, nil
	}
	return s.byIdentity[identityKey(productID, sugar)], nil
}

func (s *stubLineStore) Save(ctx context.Context, line *models.CartLine) error {
	s.saved = append(s.saved, line)
	return nil
}

func (s *stubLineStore) DeleteByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted++
	return nil
}

func (s *stubLineStore) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	s.deleted++
	return nil
}

func (s *stubLineStore) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(s.byIdentity) + len(s.saved), nil
}

func (s *stubLineStore) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(s.byIdentity) + len(s.saved), nil
}

type stubRemoteCart struct {
	calls []catalog.CartItemPayload
	err   error
}

func (s *stubRemoteCart) AddItemToCart(ctx context.Context, item catalog.CartItemPayload) error {
	s.calls = append(s.calls, item)
	return s.err
}

func newTestService(t *testing.T, lines *stubLineStore, remote *stubRemoteCart) Service {
	t.Helper()
	svc, err := NewService(lines, remote, logger.New(logger.Options{}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func sugarPtr(level enums.SugarLevel) *enums.SugarLevel {
	return &level
}

func TestAddItemRequiresLogin(t *testing.T) {
	svc := newTestService(t, &stubLineStore{}, &stubRemoteCart{})

	_, err := svc.AddItem(context.Background(), uuid.Nil, AddItemInput{
		ProductUUID: uuid.New(),
		Name:        "Latte",
		Quantity:    1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAddItemInsertsNewLine(t *testing.T) {
	lines := &stubLineStore{}
	remote := &stubRemoteCart{}
	svc := newTestService(t, lines, remote)

	userID := uuid.New()
	productID := uuid.New()
	line, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductUUID: productID,
		Name:        "Iced Latte",
		Price:       decimal.RequireFromString("3.50"),
		Quantity:    2,
		SugarLevel:  sugarPtr(enums.SugarLevelHalf),
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if len(remote.calls) != 1 {
		t.Fatalf("expected 1 remote call, got %d", len(remote.calls))
	}
	if remote.calls[0].SugarLevel != "50%" {
		t.Errorf("expected sugar level 50%%, got %q", remote.calls[0].SugarLevel)
	}
	if len(lines.saved) != 1 {
		t.Fatalf("expected 1 saved line, got %d", len(lines.saved))
	}
}

func TestAddItemFoldsDuplicateIdentity(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	sugar := sugarPtr(enums.SugarLevelHalf)
	existing := &models.CartLine{
		ID:          uuid.New(),
		UserUUID:    userID,
		ProductUUID: productID,
		SugarLevel:  sugar,
		Name:        "Iced Latte",
		Price:       decimal.RequireFromString("3.50"),
		Quantity:    1,
	}
	lines := &stubLineStore{byIdentity: map[string]*models.CartLine{
		identityKey(productID, sugar): existing,
	}}
	svc := newTestService(t, lines, &stubRemoteCart{})

	line, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductUUID: productID,
		Name:        "Iced Latte",
		Price:       decimal.RequireFromString("3.50"),
		Quantity:    2,
		SugarLevel:  sugar,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if line.ID != existing.ID {
		t.Error("expected existing line to absorb the add")
	}
	if line.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", line.Quantity)
	}
}

func TestAddItemDifferentSugarLevelIsNewLine(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	existing := &models.CartLine{
		ID:          uuid.New(),
		UserUUID:    userID,
		ProductUUID: productID,
		SugarLevel:  sugarPtr(enums.SugarLevelHalf),
		Quantity:    1,
	}
	lines := &stubLineStore{byIdentity: map[string]*models.CartLine{
		identityKey(productID, existing.SugarLevel): existing,
	}}
	svc := newTestService(t, lines, &stubRemoteCart{})

	line, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductUUID: productID,
		Name:        "Iced Latte",
		Price:       decimal.RequireFromString("3.50"),
		Quantity:    1,
		SugarLevel:  sugarPtr(enums.SugarLevelFull),
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if line.ID == existing.ID {
		t.Error("expected a separate line for a different sugar level")
	}
}

func TestAddItemToleratesRemoteOutage(t *testing.T) {
	lines := &stubLineStore{}
	remote := &stubRemoteCart{err: pkgerrors.New(pkgerrors.CodeDependency, "connection refused")}
	svc := newTestService(t, lines, remote)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductUUID: uuid.New(),
		Name:        "Croissant",
		Price:       decimal.RequireFromString("2.25"),
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("expected local add to survive remote outage, got %v", err)
	}
	if len(lines.saved) != 1 {
		t.Fatalf("expected 1 saved line, got %d", len(lines.saved))
	}
}

func TestAddItemPropagatesRemoteRejection(t *testing.T) {
	lines := &stubLineStore{}
	remote := &stubRemoteCart{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")}
	svc := newTestService(t, lines, remote)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductUUID: uuid.New(),
		Name:        "Croissant",
		Price:       decimal.RequireFromString("2.25"),
		Quantity:    1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if len(lines.saved) != 0 {
		t.Error("expected no local write after remote rejection")
	}
}

func TestRemoveItemNotFound(t *testing.T) {
	lines := &stubLineStore{deleteErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, lines, &stubRemoteCart{})

	err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New(), nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSubtotalSumsQuantities(t *testing.T) {
	userID := uuid.New()
	lines := &stubLineStore{saved: []*models.CartLine{
		{UserUUID: userID, Price: decimal.RequireFromString("3.50"), Quantity: 2},
		{UserUUID: userID, Price: decimal.RequireFromString("2.00"), Quantity: 0},
	}}
	svc := newTestService(t, lines, &stubRemoteCart{})

	subtotal, err := svc.Subtotal(context.Background(), userID)
	if err != nil {
		t.Fatalf("Subtotal: %v", err)
	}
	// 3.50*2 plus 2.00*1 (missing quantity defaults to one).
	if subtotal.StringFixed(2) != "9.00" {
		t.Errorf("expected 9.00, got %s", subtotal.StringFixed(2))
	}
}

func TestCountSumsQuantities(t *testing.T) {
	userID := uuid.New()
	lines := &stubLineStore{saved: []*models.CartLine{
		{UserUUID: userID, Quantity: 2},
		{UserUUID: userID, Quantity: 1},
		{UserUUID: userID, Quantity: 3},
	}}
	svc := newTestService(t, lines, &stubRemoteCart{})

	count, err := svc.Count(context.Background(), userID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6, got %d", count)
	}
}

func TestCountForAnonymousShopperIsZero(t *testing.T) {
	svc := newTestService(t, &stubLineStore{}, &stubRemoteCart{})

	count, err := svc.Count(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}
