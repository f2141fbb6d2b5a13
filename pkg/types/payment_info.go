package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentInfo is the redacted payment snapshot embedded in an order. By the
// time a value reaches this type the card number must already be masked and
// the CVC replaced; the storage layer never sees raw card data.
type PaymentInfo struct {
	CardName   string `json:"cardName,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"`
	CardCvc    string `json:"cardCvc,omitempty"`
}

// Value marshals the snapshot into its JSON column representation.
func (p PaymentInfo) Value() (driver.Value, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payment info: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the struct.
func (p *PaymentInfo) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentInfo{}
		return nil
	}
	raw, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("scan payment info: %w", err)
	}
	return json.Unmarshal(raw, p)
}
