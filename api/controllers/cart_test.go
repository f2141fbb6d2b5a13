package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/acarreras/tienda-backend/internal/cart"
	productsvc "github.com/acarreras/tienda-backend/internal/products"
)

type memoryCartStorage struct {
	snapshots map[string][]byte
}

func newMemoryCartStorage() *memoryCartStorage {
	return &memoryCartStorage{snapshots: make(map[string][]byte)}
}

func (m *memoryCartStorage) Load(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	raw, ok := m.snapshots[sessionID]
	if !ok {
		return &cartsvc.Cart{}, nil
	}
	var c cartsvc.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *memoryCartStorage) Save(ctx context.Context, sessionID string, c *cartsvc.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.snapshots[sessionID] = raw
	return nil
}

func (m *memoryCartStorage) Delete(ctx context.Context, sessionID string) error {
	delete(m.snapshots, sessionID)
	return nil
}

func newTestCartStore(t *testing.T) *cartsvc.Store {
	t.Helper()
	store, err := cartsvc.NewStore(newMemoryCartStorage())
	if err != nil {
		t.Fatalf("build cart store: %v", err)
	}
	return store
}

func decodeCartResponse(t *testing.T, resp *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return envelope.Data
}

func TestCartGetMintsSession(t *testing.T) {
	store := newTestCartStore(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()

	CartGet(store, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	session := resp.Header().Get(CartSessionHeader)
	if session == "" {
		t.Fatal("expected session header on response")
	}

	data := decodeCartResponse(t, resp)
	if data.SessionID != session {
		t.Fatalf("payload session %q does not match header %q", data.SessionID, session)
	}
	if len(data.Items) != 0 || data.TotalItems != 0 {
		t.Fatalf("expected empty cart got %+v", data)
	}
	if !data.Quote.Total.IsZero() {
		t.Fatalf("expected zero total for empty cart got %s", data.Quote.Total)
	}
}

func TestCartAddItemLocksCatalogPrice(t *testing.T) {
	store := newTestCartStore(t)
	item := &productsvc.ProductDTO{
		ID:        uuid.New(),
		Name:      "Desk",
		Reference: "DSK-1",
		Price:     decimal.RequireFromString("100.00"),
	}
	products := &stubProductService{item: item}

	body := []byte(`{"productId":"` + item.ID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	CartAddItem(store, products, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	data := decodeCartResponse(t, resp)
	if len(data.Items) != 1 {
		t.Fatalf("expected one line got %+v", data.Items)
	}
	line := data.Items[0]
	if line.ProductID != item.ID || line.Quantity != 1 {
		t.Fatalf("unexpected line %+v", line)
	}
	if !line.UnitPrice.Equal(item.Price) {
		t.Fatalf("expected catalog price %s got %s", item.Price, line.UnitPrice)
	}
	if !data.Quote.Total.Equal(decimal.RequireFromString("130.99")) {
		t.Fatalf("expected quoted total 130.99 got %s", data.Quote.Total)
	}
}

func TestCartAddItemTwiceIncrements(t *testing.T) {
	store := newTestCartStore(t)
	item := &productsvc.ProductDTO{ID: uuid.New(), Name: "Lamp", Reference: "LMP-1", Price: decimal.RequireFromString("25.00")}
	products := &stubProductService{item: item}
	handler := CartAddItem(store, products, testLogger())

	var session string
	for i := 0; i < 2; i++ {
		body := []byte(`{"productId":"` + item.ID.String() + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if session != "" {
			req.Header.Set(CartSessionHeader, session)
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, resp.Code)
		}
		session = resp.Header().Get(CartSessionHeader)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(CartSessionHeader, session)
	resp := httptest.NewRecorder()
	CartGet(store, testLogger()).ServeHTTP(resp, req)

	data := decodeCartResponse(t, resp)
	if len(data.Items) != 1 || data.Items[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2 got %+v", data.Items)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	store := newTestCartStore(t)
	productID := uuid.New()
	session := cartsvc.NewSessionID()

	seed := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader([]byte(`{"productId":"`+productID.String()+`"}`)))
	seed.Header.Set("Content-Type", "application/json")
	seed.Header.Set(CartSessionHeader, session)
	seedResp := httptest.NewRecorder()
	products := &stubProductService{item: &productsvc.ProductDTO{ID: productID, Name: "Lamp", Reference: "LMP-1", Price: decimal.RequireFromString("25.00")}}
	CartAddItem(store, products, testLogger()).ServeHTTP(seedResp, seed)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/"+productID.String(), bytes.NewReader([]byte(`{"quantity":0}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CartSessionHeader, session)
	req = withProductID(req, productID.String())
	resp := httptest.NewRecorder()

	CartSetQuantity(store, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	data := decodeCartResponse(t, resp)
	if len(data.Items) != 0 {
		t.Fatalf("expected empty cart after zero quantity got %+v", data.Items)
	}
}

func TestCartClearEmptiesSession(t *testing.T) {
	store := newTestCartStore(t)
	productID := uuid.New()
	session := cartsvc.NewSessionID()

	seed := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader([]byte(`{"productId":"`+productID.String()+`"}`)))
	seed.Header.Set("Content-Type", "application/json")
	seed.Header.Set(CartSessionHeader, session)
	products := &stubProductService{item: &productsvc.ProductDTO{ID: productID, Name: "Lamp", Reference: "LMP-1", Price: decimal.RequireFromString("25.00")}}
	CartAddItem(store, products, testLogger()).ServeHTTP(httptest.NewRecorder(), seed)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	req.Header.Set(CartSessionHeader, session)
	resp := httptest.NewRecorder()
	CartClear(store, testLogger()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	check := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	check.Header.Set(CartSessionHeader, session)
	checkResp := httptest.NewRecorder()
	CartGet(store, testLogger()).ServeHTTP(checkResp, check)

	data := decodeCartResponse(t, checkResp)
	if len(data.Items) != 0 {
		t.Fatalf("expected empty cart after clear got %+v", data.Items)
	}
}
