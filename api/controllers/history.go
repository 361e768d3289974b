package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

type historyStore interface {
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.OrderRecord, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type historyEntryView struct {
	ProductUUID string `json:"productUuid"`
	ProductName string `json:"productName"`
	Kind        string `json:"kind"`
	Quantity    int    `json:"qty"`
	SugarLevel  string `json:"sugarLevel,omitempty"`
	Total       string `json:"total"`
	Placed      string `json:"placed"`
}

type historyResponse struct {
	Orders []historyEntryView `json:"orders"`
	Page   int                `json:"page"`
	Size   int                `json:"size"`
	Count  int64              `json:"count"`
}

// OrderHistory lists the shopper's recorded orders, newest first.
func OrderHistory(store historyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		page := pagination.FromQuery(r.URL.Query()).Normalize()

		records, err := store.ListForUser(r.Context(), userID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := store.CountForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := make([]historyEntryView, 0, len(records))
		for _, record := range records {
			entry := historyEntryView{
				ProductUUID: record.ProductUUID.String(),
				ProductName: record.ProductName,
				Kind:        record.Kind.String(),
				Quantity:    record.Quantity,
				Total:       format.Price(record.Total),
				Placed:      format.RelativeDate(record.CreatedAt),
			}
			if record.SugarLevel != nil {
				entry.SugarLevel = record.SugarLevel.String()
			}
			entries = append(entries, entry)
		}

		responses.WriteSuccess(w, historyResponse{
			Orders: entries,
			Page:   page.Page,
			Size:   page.Size,
			Count:  count,
		})
	}
}
