package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/pkg/enums"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

// productCatalog is the slice of the remote client the page controllers
// read from.
type productCatalog interface {
	ListProducts(ctx context.Context, page pagination.Params) ([]catalog.Product, error)
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CategoryByName(ctx context.Context, name string) (*catalog.Category, error)
	ProductsByCategory(ctx context.Context, categoryID string, page pagination.Params) ([]catalog.Product, error)
	ListReviews(ctx context.Context, productID string) ([]catalog.Review, error)
	CreateReview(ctx context.Context, productID, comment string) (*catalog.Review, error)
}

type cartCounter interface {
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

// badgeCount resolves the cart badge for a view model. Badge failures
// never break a page render; they degrade to zero.
func badgeCount(ctx context.Context, logg *logger.Logger, carts cartCounter, userID uuid.UUID) int {
	if carts == nil || userID == uuid.Nil {
		return 0
	}
	count, err := carts.Count(ctx, userID)
	if err != nil {
		if logg != nil {
			logg.Warn(ctx, "cart badge unavailable")
		}
		return 0
	}
	return count
}

// productView is the list-page rendering of one product.
type productView struct {
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Image        string `json:"image"`
	Availability string `json:"availability,omitempty"`
}

func newProductView(p catalog.Product) productView {
	view := productView{
		UUID:  p.UUID,
		Name:  p.Name,
		Price: format.Price(p.Price),
		Image: p.PrimaryImage(),
	}
	if p.Stock != nil {
		view.Availability = availabilityLabel(*p.Stock)
	}
	return view
}

func availabilityLabel(stock int) string {
	return enums.AvailabilityFor(stock).String()
}

func newProductViews(products []catalog.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}
