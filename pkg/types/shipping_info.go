package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ShippingInfo is the checkout contact/address snapshot embedded in an order.
// It is stored as a JSON document column.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Value marshals the snapshot into its JSON column representation.
func (s ShippingInfo) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping info: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the struct.
func (s *ShippingInfo) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingInfo{}
		return nil
	}
	raw, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("scan shipping info: %w", err)
	}
	return json.Unmarshal(raw, s)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
