package controllers

import (
	"net/http"
	"strings"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	cartsvc "github.com/gracebuffer/storefront/internal/cart"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

type menuResponse struct {
	Category string        `json:"category,omitempty"`
	Products []productView `json:"products"`
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Badge    int           `json:"badge"`
}

// Menu renders the menu page: one page of products, optionally narrowed
// to a category by name, plus the cart badge. An empty remote catalog is
// an empty page, not an error.
func Menu(remote productCatalog, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if remote == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		page := pagination.FromQuery(r.URL.Query()).Normalize()
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		var (
			products []productView
			err      error
		)
		if category == "" {
			products, err = listAll(r, remote, page)
		} else {
			products, err = listByCategory(r, remote, category, page)
		}
		if err != nil {
			// An unreachable catalog renders as an empty menu, the same
			// empty state an empty catalog produces.
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDependency {
				if logg != nil {
					logg.Warn(r.Context(), "catalog unavailable, rendering empty menu")
				}
				products = nil
			} else {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, menuResponse{
			Category: category,
			Products: products,
			Page:     page.Page,
			Size:     page.Size,
			Badge:    badgeCount(r.Context(), logg, carts, middleware.UserIDFromContext(r.Context())),
		})
	}
}

func listAll(r *http.Request, remote productCatalog, page pagination.Params) ([]productView, error) {
	products, err := remote.ListProducts(r.Context(), page)
	if err != nil {
		return nil, err
	}
	return newProductViews(products), nil
}

func listByCategory(r *http.Request, remote productCatalog, category string, page pagination.Params) ([]productView, error) {
	cat, err := remote.CategoryByName(r.Context(), category)
	if err != nil {
		return nil, err
	}
	products, err := remote.ProductsByCategory(r.Context(), cat.UUID, page)
	if err != nil {
		return nil, err
	}
	return newProductViews(products), nil
}

// Categories lists the catalog's categories for the menu tabs.
func Categories(remote productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if remote == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		categories, err := remote.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
