package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	cartsvc "github.com/gracebuffer/storefront/internal/cart"
	"github.com/gracebuffer/storefront/internal/catalog"
	stocksvc "github.com/gracebuffer/storefront/internal/stock"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

type detailResponse struct {
	Product      detailProductView       `json:"product"`
	Kind         string                  `json:"kind"`
	Stock        *int                    `json:"stock,omitempty"`
	Availability string                  `json:"availability"`
	Quantity     int                     `json:"quantity"`
	Controls     stocksvc.ControlState   `json:"controls"`
	SugarLevels  []string                `json:"sugarLevels,omitempty"`
	Reviews      []reviewView            `json:"reviews"`
	Suggestions  []productView           `json:"suggestions"`
	Badge        int                     `json:"badge"`
}

type detailProductView struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Images      []string `json:"images"`
}

type reviewView struct {
	UUID      string `json:"uuid"`
	Comment   string `json:"comment"`
	CreatedBy string `json:"createdBy"`
	Posted    string `json:"posted"`
}

func newReviewViews(reviews []catalog.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		if review.IsDeleted {
			continue
		}
		views = append(views, reviewView{
			UUID:      review.UUID,
			Comment:   review.Comment,
			CreatedBy: review.CreatedBy,
			Posted:    format.RelativeDate(review.CreatedAt),
		})
	}
	return views
}

func productKind(p *catalog.Product) enums.ProductKind {
	if p.Stock == nil {
		return enums.ProductKindDrink
	}
	return enums.ProductKindPastry
}

const maxSuggestions = 4

// suggestions pulls a handful of products from the opposite category:
// pastries on a drink page, drinks on a pastry page. Any failure along
// the way leaves the section empty.
func suggestions(r *http.Request, remote productCatalog, kind enums.ProductKind, currentID string) []productView {
	opposite := enums.ProductKindPastry
	if kind == enums.ProductKindPastry {
		opposite = enums.ProductKindDrink
	}

	category, err := remote.CategoryByName(r.Context(), opposite.String())
	if err != nil || category == nil {
		return nil
	}
	products, err := remote.ProductsByCategory(r.Context(), category.UUID, pagination.Params{Page: 0, Size: 5})
	if err != nil {
		return nil
	}

	views := make([]productView, 0, maxSuggestions)
	for _, product := range products {
		if product.UUID == currentID {
			continue
		}
		views = append(views, newProductView(product))
		if len(views) == maxSuggestions {
			break
		}
	}
	return views
}

// ProductDetail renders the detail page: the product, its gated quantity
// controls at the requested quantity, sugar levels for drinks, and the
// product's reviews.
func ProductDetail(remote productCatalog, stocks stocksvc.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		qty, err := validators.ParseQueryInt(r, "qty", 0, 0, 999)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := remote.GetProduct(r.Context(), productID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		effective, err := stocks.EffectiveStock(r.Context(), productID, product.Stock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := stocksvc.NewQuantityState(effective)
		for i := 0; i < qty; i++ {
			state = state.Increase()
		}

		reviews, err := remote.ListReviews(r.Context(), productID.String())
		if err != nil {
			// Reviews are decoration on the detail page; render without them.
			if logg != nil {
				logg.Warn(r.Context(), "reviews unavailable for product detail")
			}
			reviews = nil
		}

		kind := productKind(product)
		view := detailResponse{
			Product: detailProductView{
				UUID:        product.UUID,
				Name:        product.Name,
				Description: product.Description,
				Price:       format.Price(product.Price),
				Images:      product.Images,
			},
			Kind:         kind.String(),
			Stock:        effective,
			Availability: state.Availability().String(),
			Quantity:     state.Quantity,
			Controls:     state.Controls(),
			Reviews:      newReviewViews(reviews),
			Suggestions:  suggestions(r, remote, kind, product.UUID),
			Badge:        badgeCount(r.Context(), logg, carts, middleware.UserIDFromContext(r.Context())),
		}
		if kind == enums.ProductKindDrink {
			view.SugarLevels = enums.SugarLevelOptions()
		}

		responses.WriteSuccess(w, view)
	}
}

type confirmOrderRequest struct {
	Qty        int    `json:"qty" validate:"required,min=1"`
	SugarLevel string `json:"sugarLevel,omitempty"`
}

type confirmOrderResponse struct {
	Stock        *int                  `json:"stock,omitempty"`
	Availability string                `json:"availability"`
	Quantity     int                   `json:"quantity"`
	Controls     stocksvc.ControlState `json:"controls"`
	Total        string                `json:"total"`
	Badge        int                   `json:"badge"`
}

// ConfirmOrder commits a detail-page order for the current shopper.
func ConfirmOrder(remote productCatalog, stocks stocksvc.Service, carts cartsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload confirmOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var sugar *enums.SugarLevel
		if payload.SugarLevel != "" {
			level, err := enums.ParseSugarLevel(payload.SugarLevel)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sugar level"))
				return
			}
			sugar = &level
		}

		product, err := remote.GetProduct(r.Context(), productID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := stocks.ConfirmOrder(r.Context(), middleware.UserIDFromContext(r.Context()), stocksvc.ConfirmInput{
			ProductUUID: productID,
			ProductName: product.Name,
			Kind:        productKind(product),
			Price:       product.Price,
			Quantity:    payload.Qty,
			SugarLevel:  sugar,
			RemoteStock: product.Stock,
		})
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		responses.WriteSuccess(w, confirmOrderResponse{
			Stock:        result.Stock,
			Availability: result.Quantity.Availability().String(),
			Quantity:     result.Quantity.Quantity,
			Controls:     result.Quantity.Controls(),
			Total:        format.Price(result.Total),
			Badge:        badgeCount(r.Context(), logg, carts, middleware.UserIDFromContext(r.Context())),
		})
	}
}

// CreateReview posts a review comment for a product.
func CreateReview(remote productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload struct {
			Comment string `json:"comment" validate:"required,max=500"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := remote.CreateReview(r.Context(), productID.String(), validators.SanitizeString(payload.Comment, 500))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := newReviewViews([]catalog.Review{*review})
		if len(views) == 0 {
			responses.WriteSuccessStatus(w, http.StatusCreated, nil)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, views[0])
	}
}
