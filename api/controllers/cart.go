package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/acarreras/tienda-backend/api/responses"
	"github.com/acarreras/tienda-backend/api/validators"
	cartsvc "github.com/acarreras/tienda-backend/internal/cart"
	"github.com/acarreras/tienda-backend/internal/pricing"
	productsvc "github.com/acarreras/tienda-backend/internal/products"
	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
	"github.com/acarreras/tienda-backend/pkg/logger"
)

// CartSessionHeader carries the storefront cart session identifier. The
// server mints one on first contact and echoes it on every cart response;
// the client persists it and sends it back on subsequent calls.
const CartSessionHeader = "X-Cart-Session"

type cartResponse struct {
	SessionID  string        `json:"sessionId"`
	Items      []cartsvc.Item `json:"items"`
	TotalItems int           `json:"totalItems"`
	Quote      pricing.Quote `json:"quote"`
}

func newCartResponse(sessionID string, c *cartsvc.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cartsvc.Item{}
	}
	return cartResponse{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: c.TotalItems(),
		Quote:      c.Quote(),
	}
}

// cartSession resolves the session from the request header, minting a fresh
// one when the client has none yet, and echoes it on the response.
func cartSession(w http.ResponseWriter, r *http.Request) string {
	sessionID := strings.TrimSpace(r.Header.Get(CartSessionHeader))
	if sessionID == "" {
		sessionID = cartsvc.NewSessionID()
	}
	w.Header().Set(CartSessionHeader, sessionID)
	return sessionID
}

func CartGet(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		sessionID := cartSession(w, r)
		c, err := store.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(sessionID, c))
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// CartAddItem adds one unit of the product to the cart. The line snapshot
// (name, reference, unit price) comes from the catalog, never the client.
func CartAddItem(store *cartsvc.Store, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := products.Get(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := cartSession(w, r)
		c, err := store.AddItem(r.Context(), sessionID, cartsvc.Product{
			ID:        item.ID,
			Name:      item.Name,
			Reference: item.Reference,
			Price:     item.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(sessionID, c))
	}
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSetQuantity replaces the line quantity. Zero or negative removes the
// line entirely.
func CartSetQuantity(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setCartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := cartSession(w, r)
		c, err := store.SetQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(sessionID, c))
	}
}

func CartRemoveItem(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := cartSession(w, r)
		c, err := store.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(sessionID, c))
	}
}

func CartClear(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		sessionID := cartSession(w, r)
		if err := store.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(sessionID, &cartsvc.Cart{}))
	}
}
