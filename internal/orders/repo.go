package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acarreras/tienda-backend/pkg/db/models"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the order together with its line items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads the order with its items or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest-first with their items. A positive limit caps
// the result size.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Order
	err := q.Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

type salesTotals struct {
	Orders  int
	Revenue decimal.Decimal
}

// SalesBetween counts orders and sums their totals inside [from, to).
func (r *Repository) SalesBetween(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	var totals salesTotals
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue
		     FROM orders
		     WHERE created_at >= ? AND created_at < ?`, from, to).
		Scan(&totals).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return totals.Orders, totals.Revenue, nil
}

// TopProductsBetween ranks products by units sold inside [from, to).
func (r *Repository) TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]TopProductEntry, error) {
	var entries []TopProductEntry
	err := r.db.WithContext(ctx).
		Raw(`SELECT oi.product_id, oi.name, SUM(oi.quantity) AS quantity
		     FROM order_items oi
		     JOIN orders o ON o.id = oi.order_id
		     WHERE o.created_at >= ? AND o.created_at < ?
		     GROUP BY oi.product_id, oi.name
		     ORDER BY quantity DESC
		     LIMIT ?`, from, to, limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
