package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acarreras/tienda-backend/internal/notifications"
	"github.com/acarreras/tienda-backend/pkg/db"
	"github.com/acarreras/tienda-backend/pkg/db/models"
	"github.com/acarreras/tienda-backend/pkg/enums"
	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
	"github.com/acarreras/tienda-backend/pkg/logger"
	"github.com/acarreras/tienda-backend/pkg/types"
)

var orderNumberRe = regexp.MustCompile(`^ORD-\d{4}-\d{4}$`)

type fakeConfirmationMailer struct {
	sent []notifications.OrderEmailData
	to   []string
	fail bool
}

func (f *fakeConfirmationMailer) SendOrderConfirmation(_ context.Context, to string, data notifications.OrderEmailData) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, data)
	return nil
}

func newTestOrderService(t *testing.T) (Service, *Repository, *fakeConfirmationMailer) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	mail := &fakeConfirmationMailer{}
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     gormTxRunner{db: conn},
		Mailer: mail,
		Logger: logger.New(logger.Options{ServiceName: "orders-test"}),
	})
	require.NoError(t, err)
	return svc, repo, mail
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func checkoutInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []LineItemInput{
			{ProductID: uuid.New(), Name: "Walnut Desk", Reference: "DSK-100", Quantity: 2, Price: dec("50")},
		},
		ShippingInfo: &types.ShippingInfo{
			FirstName: "Ana",
			LastName:  "Garcia",
			Email:     "ana@example.com",
			Address:   "Calle Mayor 1",
			City:      "Madrid",
			ZipCode:   "28001",
			Country:   "ES",
		},
		PaymentInfo: &PaymentInput{
			CardName:   "ANA GARCIA",
			CardNumber: "4111111111111111",
			CardExpiry: "12/27",
			CardCvc:    "123",
		},
	}
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc, repo, _ := newTestOrderService(t)

	_, err := svc.Create(context.Background(), CreateOrderInput{})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Equal(t, "no items provided", appErr.Message())

	// nothing reached persistence
	list, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrderPersistsRecomputedTotals(t *testing.T) {
	svc, repo, _ := newTestOrderService(t)

	input := checkoutInput()
	// tampered client totals must be ignored
	input.Subtotal = dec("1")
	input.Shipping = dec("0")
	input.Tax = dec("0")
	input.Total = dec("1")

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.True(t, stored.Subtotal.Equal(dec("100")), "subtotal: %s", stored.Subtotal)
	assert.True(t, stored.Shipping.Equal(dec("9.99")), "shipping: %s", stored.Shipping)
	assert.True(t, stored.Tax.Equal(dec("21")), "tax: %s", stored.Tax)
	assert.True(t, stored.Total.Equal(dec("130.99")), "total: %s", stored.Total)
	assert.True(t, stored.Total.Equal(stored.Subtotal.Add(stored.Shipping).Add(stored.Tax)))
	assert.Equal(t, enums.OrderStatusPending, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestCreateOrderNumberFormat(t *testing.T) {
	svc, _, _ := newTestOrderService(t)

	created, err := svc.Create(context.Background(), checkoutInput())
	require.NoError(t, err)
	assert.Regexp(t, orderNumberRe, created.OrderNumber)
}

func TestCreateOrderRedactsPayment(t *testing.T) {
	svc, repo, _ := newTestOrderService(t)

	created, err := svc.Create(context.Background(), checkoutInput())
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentInfo)
	assert.Equal(t, "****-****-****-1111", stored.PaymentInfo.CardNumber)
	assert.Equal(t, "***", stored.PaymentInfo.CardCvc)
	assert.Equal(t, "ANA GARCIA", stored.PaymentInfo.CardName)
}

func TestCreateOrderSendsConfirmation(t *testing.T) {
	svc, _, mail := newTestOrderService(t)

	created, err := svc.Create(context.Background(), checkoutInput())
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, mail.to)
	assert.Equal(t, created.OrderNumber, mail.sent[0].OrderNumber)
	require.Len(t, mail.sent[0].Items, 1)
}

func TestCreateOrderWithoutEmailSkipsConfirmation(t *testing.T) {
	svc, _, mail := newTestOrderService(t)

	input := checkoutInput()
	input.ShippingInfo = nil

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestCreateOrderSurvivesMailFailure(t *testing.T) {
	svc, repo, mail := newTestOrderService(t)
	mail.fail = true

	created, err := svc.Create(context.Background(), checkoutInput())
	require.NoError(t, err, "mail failure must not fail the creation")

	_, err = repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err, "order must still be persisted")
}

func TestCreateOrderRejectsBadLines(t *testing.T) {
	svc, _, _ := newTestOrderService(t)

	input := checkoutInput()
	input.Items[0].Quantity = 0
	_, err := svc.Create(context.Background(), input)
	require.NotNil(t, pkgerrors.As(err))

	input = checkoutInput()
	input.Items[0].Price = dec("-1")
	_, err = svc.Create(context.Background(), input)
	require.NotNil(t, pkgerrors.As(err))
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _, _ := newTestOrderService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, repo, _ := newTestOrderService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, checkoutInput())
	require.NoError(t, err)

	err = repo.db.Table("orders").
		Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	second, err := svc.Create(ctx, checkoutInput())
	require.NoError(t, err)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestDailyReport(t *testing.T) {
	svc, repo, _ := newTestOrderService(t)
	ctx := context.Background()

	deskID := uuid.New()
	lampID := uuid.New()

	mkInput := func(lines ...LineItemInput) CreateOrderInput {
		in := checkoutInput()
		in.Items = lines
		in.ShippingInfo = nil
		return in
	}

	_, err := svc.Create(ctx, mkInput(
		LineItemInput{ProductID: deskID, Name: "Desk", Reference: "DSK-100", Quantity: 3, Price: dec("100")},
	))
	require.NoError(t, err)
	_, err = svc.Create(ctx, mkInput(
		LineItemInput{ProductID: deskID, Name: "Desk", Reference: "DSK-100", Quantity: 2, Price: dec("100")},
		LineItemInput{ProductID: lampID, Name: "Lamp", Reference: "LMP-001", Quantity: 4, Price: dec("10")},
	))
	require.NoError(t, err)

	// an order from another day must not count
	old, err := svc.Create(ctx, mkInput(
		LineItemInput{ProductID: lampID, Name: "Lamp", Reference: "LMP-001", Quantity: 9, Price: dec("10")},
	))
	require.NoError(t, err)
	err = repo.db.Table("orders").
		Where("id = ?", old.ID).
		Update("created_at", time.Now().UTC().Add(-48*time.Hour)).Error
	require.NoError(t, err)

	report, err := svc.DailyReport(ctx, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalOrders)
	// 300 + 9.99 + 63 plus 240 + 9.99 + 50.40
	wantRevenue := dec("372.99").Add(dec("300.39"))
	assert.True(t, report.TotalRevenue.Equal(wantRevenue), "revenue: %s", report.TotalRevenue)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Desk", report.TopProducts[0].Name)
	assert.Equal(t, 5, report.TopProducts[0].Quantity)
	assert.Equal(t, "Lamp", report.TopProducts[1].Name)
	assert.Equal(t, 4, report.TopProducts[1].Quantity)
}

func TestDuplicateOrderNumberIsUniqueViolation(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mkOrder := func() *models.Order {
		return &models.Order{
			ID:          uuid.New(),
			OrderNumber: "ORD-2026-0001",
			Subtotal:    dec("10"),
			Shipping:    dec("9.99"),
			Tax:         dec("2.10"),
			Total:       dec("22.09"),
			Status:      enums.OrderStatusPending,
		}
	}

	_, err := repo.Create(ctx, mkOrder())
	require.NoError(t, err)

	_, err = repo.Create(ctx, mkOrder())
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "idx_orders_order_number"))
}
