package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarreras/tienda-backend/internal/notifications"
	"github.com/acarreras/tienda-backend/internal/pricing"
	"github.com/acarreras/tienda-backend/pkg/db"
	"github.com/acarreras/tienda-backend/pkg/db/models"
	"github.com/acarreras/tienda-backend/pkg/enums"
	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
	"github.com/acarreras/tienda-backend/pkg/logger"
)

// orderNumberAttempts bounds the retry loop on order-number collisions.
const orderNumberAttempts = 5

const topProductsLimit = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type confirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, data notifications.OrderEmailData) error
}

// Service validates and durably records checkout submissions.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit int) ([]models.Order, error)
	DailyReport(ctx context.Context, day time.Time) (*DailyReport, error)
}

type service struct {
	repo *Repository
	tx   txRunner
	mail confirmationMailer
	logg *logger.Logger
}

// ServiceParams bundles the dependencies for the order service.
type ServiceParams struct {
	Repo   *Repository
	Tx     txRunner
	Mailer confirmationMailer
	Logger *logger.Logger
}

// NewService constructs the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo: params.Repo,
		tx:   params.Tx,
		mail: params.Mailer,
		logg: params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items provided")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be greater than zero")
		}
		if item.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price must be zero or greater")
		}
	}

	// the stored breakdown is always recomputed from the line items;
	// client-submitted totals are ignored
	lines := make([]pricing.Line, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	quote := pricing.Compute(lines)

	order := &models.Order{
		ID:           uuid.New(),
		UserEmail:    input.UserEmail,
		ShippingInfo: input.ShippingInfo,
		PaymentInfo:  RedactPayment(input.PaymentInfo),
		Subtotal:     quote.Subtotal,
		Shipping:     quote.Shipping,
		Tax:          quote.Tax,
		Total:        quote.Total,
		Status:       enums.OrderStatusPending,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	created, err := s.persistWithFreshNumber(ctx, order)
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, created)

	return created, nil
}

// persistWithFreshNumber assigns a random order number and inserts the
// record, retrying a bounded number of times when the number collides.
func (s *service) persistWithFreshNumber(ctx context.Context, order *models.Order) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := newOrderNumber(time.Now().UTC())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}
		order.OrderNumber = number

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			_, err := s.repo.WithTx(tx).Create(ctx, order)
			return err
		})
		if err == nil {
			return order, nil
		}
		if !db.IsUniqueViolation(err, "idx_orders_order_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
		}
		lastErr = err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lastErr, "order number space exhausted")
}

// sendConfirmation dispatches the order email when a recipient is known.
// The order is already persisted, so failures are logged and swallowed.
func (s *service) sendConfirmation(ctx context.Context, order *models.Order) {
	recipient := ""
	if order.ShippingInfo != nil && order.ShippingInfo.Email != "" {
		recipient = order.ShippingInfo.Email
	} else if order.UserEmail != nil && *order.UserEmail != "" {
		recipient = *order.UserEmail
	}
	if recipient == "" {
		return
	}

	data := notifications.OrderEmailData{
		OrderNumber: order.OrderNumber,
		Subtotal:    order.Subtotal,
		Shipping:    order.Shipping,
		Tax:         order.Tax,
		Total:       order.Total,
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, notifications.OrderEmailLine{
			Name:      item.Name,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	if err := s.mail.SendOrderConfirmation(ctx, recipient, data); err != nil {
		ctx = s.logg.WithOrderNumber(ctx, order.OrderNumber)
		s.logg.Warn(ctx, "order confirmation email failed: "+err.Error())
	}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Order, error) {
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return out, nil
}

// DailyReport aggregates the given calendar day (UTC).
func (s *service) DailyReport(ctx context.Context, day time.Time) (*DailyReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	count, revenue, err := s.repo.SalesBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate sales")
	}
	top, err := s.repo.TopProductsBetween(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rank products")
	}

	return &DailyReport{
		Date:         from.Format("2006-01-02"),
		TotalOrders:  count,
		TotalRevenue: revenue,
		TopProducts:  top,
	}, nil
}
