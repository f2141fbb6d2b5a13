package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsvc "github.com/acarreras/tienda-backend/internal/products"
	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
)

type stubProductService struct {
	item  *productsvc.ProductDTO
	items []productsvc.ProductDTO
	err   error

	deleted uuid.UUID
}

func (s *stubProductService) Create(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return s.item, s.err
}

func (s *stubProductService) Update(ctx context.Context, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return s.item, s.err
}

func (s *stubProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	s.deleted = productID
	return s.err
}

func (s *stubProductService) Get(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	return s.item, s.err
}

func (s *stubProductService) List(ctx context.Context) ([]productsvc.ProductDTO, error) {
	return s.items, s.err
}

func withProductID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestProductListReturnsCatalog(t *testing.T) {
	svc := &stubProductService{items: []productsvc.ProductDTO{
		{ID: uuid.New(), Name: "Lamp", Reference: "LMP-1", Price: decimal.RequireFromString("25.00")},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp := httptest.NewRecorder()

	ProductList(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []productsvc.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Lamp" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestProductGetRejectsBadID(t *testing.T) {
	req := withProductID(httptest.NewRequest(http.MethodGet, "/api/products/nope", nil), "nope")
	resp := httptest.NewRecorder()

	ProductGet(&stubProductService{}, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductGetNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	id := uuid.New()

	req := withProductID(httptest.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil), id.String())
	resp := httptest.NewRecorder()

	ProductGet(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductCreateCreated(t *testing.T) {
	item := &productsvc.ProductDTO{ID: uuid.New(), Name: "Desk", Reference: "DSK-1"}
	svc := &stubProductService{item: item}

	body := []byte(`{"name":"Desk","reference":"DSK-1","price":120.5,"quantity":3,"imageUrl":"https://cdn.example.com/desk.png"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	ProductCreate(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestProductCreateDuplicateReference(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeConflict, "reference already exists")}

	body := []byte(`{"name":"Desk","reference":"DSK-1","price":120.5,"quantity":3,"imageUrl":"https://cdn.example.com/desk.png"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	ProductCreate(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "reference already exists" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestProductDeletePassesID(t *testing.T) {
	svc := &stubProductService{}
	id := uuid.New()

	req := withProductID(httptest.NewRequest(http.MethodDelete, "/api/products/"+id.String(), nil), id.String())
	resp := httptest.NewRecorder()

	ProductDelete(svc, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.deleted != id {
		t.Fatalf("expected delete of %s got %s", id, svc.deleted)
	}
}
