package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	cartsvc "github.com/gracebuffer/storefront/internal/cart"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type cartLineView struct {
	ProductUUID string `json:"productUuid"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Quantity    int    `json:"qty"`
	SugarLevel  string `json:"sugarLevel,omitempty"`
	Image       string `json:"image,omitempty"`
	LineTotal   string `json:"lineTotal"`
}

type cartResponse struct {
	Items    []cartLineView `json:"items"`
	Subtotal string         `json:"subtotal"`
	Badge    int            `json:"badge"`
	Empty    bool           `json:"empty"`
}

func newCartLineView(line models.CartLine) cartLineView {
	view := cartLineView{
		ProductUUID: line.ProductUUID.String(),
		Name:        line.Name,
		Price:       format.Price(line.Price),
		Quantity:    line.EffectiveQuantity(),
		LineTotal:   format.Price(line.Price.Mul(decimal.NewFromInt(int64(line.EffectiveQuantity())))),
	}
	if line.SugarLevel != nil {
		view.SugarLevel = line.SugarLevel.String()
	}
	if line.Image != nil {
		view.Image = *line.Image
	}
	return view
}

// Cart renders the cart page view model.
func Cart(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		lines, err := carts.Items(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		subtotal, err := carts.Subtotal(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]cartLineView, 0, len(lines))
		badge := 0
		for _, line := range lines {
			views = append(views, newCartLineView(line))
			badge += line.EffectiveQuantity()
		}

		responses.WriteSuccess(w, cartResponse{
			Items:    views,
			Subtotal: format.Price(subtotal),
			Badge:    badge,
			Empty:    len(views) == 0,
		})
	}
}

type addCartItemRequest struct {
	ProductUUID string `json:"productUuid" validate:"required,uuid"`
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Qty         int    `json:"qty" validate:"required,min=1"`
	SugarLevel  string `json:"sugarLevel,omitempty"`
	Image       string `json:"image,omitempty"`
}

// AddCartItem adds one item to the shopper's cart.
func AddCartItem(carts cartsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductUUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		input := cartsvc.AddItemInput{
			ProductUUID: productID,
			Name:        validators.SanitizeString(payload.Name, 200),
			Price:       price,
			Quantity:    payload.Qty,
		}
		if payload.SugarLevel != "" {
			level, err := enums.ParseSugarLevel(payload.SugarLevel)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sugar level"))
				return
			}
			input.SugarLevel = &level
		}
		if payload.Image != "" {
			image := payload.Image
			input.Image = &image
		}

		line, err := carts.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		badge := badgeCount(r.Context(), logg, carts, middleware.UserIDFromContext(r.Context()))
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"item":  newCartLineView(*line),
			"badge": badge,
		})
	}
}

type removeCartItemRequest struct {
	ProductUUID string `json:"productUuid" validate:"required"`
	SugarLevel  string `json:"sugarLevel,omitempty"`
}

// RemoveCartItem deletes one line by its (product, sugar level) identity.
func RemoveCartItem(carts cartsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductUUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
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

		userID := middleware.UserIDFromContext(r.Context())
		if err := carts.RemoveItem(r.Context(), userID, productID, sugar); err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"badge": badgeCount(r.Context(), logg, carts, userID),
		})
	}
}

// ClearCart empties the shopper's cart.
func ClearCart(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := carts.Clear(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"badge": 0})
	}
}
