package product

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// validateFields applies the catalog field constraints and returns a
// per-field message map, empty when everything passes.
func validateFields(name, reference string, price decimal.Decimal, quantity int, imageURL string) map[string]string {
	fieldErrs := map[string]string{}

	if len(name) < 2 || len(name) > 100 {
		fieldErrs["name"] = "name must be between 2 and 100 characters"
	}
	if len(reference) < 3 || len(reference) > 50 {
		fieldErrs["reference"] = "reference must be between 3 and 50 characters"
	}
	if price.IsNegative() {
		fieldErrs["price"] = "price must be zero or greater"
	}
	if quantity < 0 {
		fieldErrs["quantity"] = "quantity must be zero or greater"
	}
	if !isHTTPURL(imageURL) {
		fieldErrs["imageUrl"] = "imageUrl must be a valid http(s) URL"
	}

	return fieldErrs
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
