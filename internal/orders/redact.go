package orders

import (
	"strings"

	"github.com/acarreras/tienda-backend/pkg/types"
)

const (
	cardMaskPrefix = "****-****-****-"
	cvcMask        = "***"
)

// RedactPayment converts the raw checkout card data into the storable
// snapshot: card number keeps only its trailing four digits behind a fixed
// mask, and the CVC is replaced outright. The format is a compatibility
// requirement for existing stored records.
func RedactPayment(in *PaymentInput) *types.PaymentInfo {
	if in == nil {
		return nil
	}

	out := &types.PaymentInfo{
		CardName:   in.CardName,
		CardExpiry: in.CardExpiry,
	}

	digits := strings.ReplaceAll(strings.ReplaceAll(in.CardNumber, " ", ""), "-", "")
	if len(digits) >= 4 {
		out.CardNumber = cardMaskPrefix + digits[len(digits)-4:]
	} else if digits != "" {
		out.CardNumber = cardMaskPrefix + digits
	}

	if in.CardCvc != "" {
		out.CardCvc = cvcMask
	}

	return out
}
