package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// newOrderNumber builds a human-readable identifier in the form
// ORD-<year>-<4 digits>. The suffix is random, so callers must handle the
// occasional collision against the unique index and retry.
func newOrderNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate order number suffix: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%04d", now.Year(), n.Int64()), nil
}
