package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/pkg/db/models"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
)

func TestMenuListsProductsWithBadge(t *testing.T) {
	stock := 7
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"a": {UUID: uuid.NewString(), Name: "Latte", Price: decimal.NewFromFloat(3.50)},
		"b": {UUID: uuid.NewString(), Name: "Croissant", Price: decimal.NewFromFloat(2.50), Stock: &stock},
	}}
	carts := &stubCartService{lines: []models.CartLine{
		{ProductUUID: uuid.New(), Name: "Latte", Price: decimal.NewFromFloat(3.50), Quantity: 2},
	}}

	w := httptest.NewRecorder()
	Menu(cat, carts, nil)(w, authedRequest("GET", "/menu", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data menuResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(envelope.Data.Products))
	}
	if envelope.Data.Badge != 2 {
		t.Fatalf("expected badge 2, got %d", envelope.Data.Badge)
	}
}

func TestMenuDegradesWhenCatalogDown(t *testing.T) {
	cat := &stubCatalog{listErr: pkgerrors.New(pkgerrors.CodeDependency, "remote api unreachable")}

	w := httptest.NewRecorder()
	Menu(cat, &stubCartService{}, nil)(w, authedRequest("GET", "/menu", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected empty menu, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data menuResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Products) != 0 {
		t.Fatalf("expected no products, got %d", len(envelope.Data.Products))
	}
}

func TestMenuFiltersByCategory(t *testing.T) {
	stock := 4
	cat := &stubCatalog{
		categories: []catalog.Category{{UUID: uuid.NewString(), Name: "pastry"}},
		byCategory: []catalog.Product{
			{UUID: uuid.NewString(), Name: "Scone", Price: decimal.NewFromFloat(2.00), Stock: &stock},
		},
	}

	w := httptest.NewRecorder()
	Menu(cat, &stubCartService{}, nil)(w, authedRequest("GET", "/menu?category=pastry", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data menuResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Category != "pastry" {
		t.Fatalf("expected category pastry, got %s", envelope.Data.Category)
	}
	if len(envelope.Data.Products) != 1 || envelope.Data.Products[0].Name != "Scone" {
		t.Fatalf("expected the category's product, got %+v", envelope.Data.Products)
	}
}
