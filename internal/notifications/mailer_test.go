package notifications

import (
	"context"
	"net/smtp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acarreras/tienda-backend/pkg/config"
	"github.com/acarreras/tienda-backend/pkg/logger"
)

type capturedSend struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(t *testing.T, cfg config.SMTPConfig) (*Mailer, *[]capturedSend) {
	t.Helper()
	m, err := NewMailer(cfg, logger.New(logger.Options{ServiceName: "mail-test"}))
	require.NoError(t, err)

	var sends []capturedSend
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sends = append(sends, capturedSend{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m, &sends
}

func configuredSMTP() config.SMTPConfig {
	return config.SMTPConfig{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "shop@example.com",
		AppName: "Tienda",
	}
}

func TestSendOrderConfirmationRendersTotals(t *testing.T) {
	m, sends := newTestMailer(t, configuredSMTP())

	err := m.SendOrderConfirmation(context.Background(), "ana@example.com", OrderEmailData{
		OrderNumber: "ORD-2026-0042",
		Items: []OrderEmailLine{
			{Name: "Walnut Desk", Reference: "DSK-100", Quantity: 2, UnitPrice: decimal.RequireFromString("50")},
		},
		Subtotal: decimal.RequireFromString("100"),
		Shipping: decimal.RequireFromString("9.99"),
		Tax:      decimal.RequireFromString("21"),
		Total:    decimal.RequireFromString("130.99"),
	})
	require.NoError(t, err)
	require.Len(t, *sends, 1)

	sent := (*sends)[0]
	assert.Equal(t, "smtp.example.com:587", sent.addr)
	assert.Equal(t, []string{"ana@example.com"}, sent.to)
	assert.Contains(t, sent.msg, "ORD-2026-0042")
	assert.Contains(t, sent.msg, "Walnut Desk")
	// money is presented at two decimals
	assert.Contains(t, sent.msg, "100.00")
	assert.Contains(t, sent.msg, "9.99")
	assert.Contains(t, sent.msg, "21.00")
	assert.Contains(t, sent.msg, "130.99")
}

func TestSendWelcome(t *testing.T) {
	m, sends := newTestMailer(t, configuredSMTP())

	require.NoError(t, m.SendWelcome(context.Background(), "ana@example.com", "Ana"))
	require.Len(t, *sends, 1)
	assert.Contains(t, (*sends)[0].msg, "Welcome, Ana")
	assert.Contains(t, (*sends)[0].msg, "Subject: Welcome to Tienda")
}

func TestSendLoginNotification(t *testing.T) {
	m, sends := newTestMailer(t, configuredSMTP())

	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, m.SendLoginNotification(context.Background(), "ana@example.com", "Ana", at))
	require.Len(t, *sends, 1)
	assert.Contains(t, (*sends)[0].msg, "Ana")
	assert.Contains(t, (*sends)[0].msg, "2026")
}

func TestSendDailyReport(t *testing.T) {
	m, sends := newTestMailer(t, configuredSMTP())

	err := m.SendDailyReport(context.Background(), "admin@example.com", ReportEmailData{
		Date:         "2026-02-28",
		TotalOrders:  7,
		TotalRevenue: decimal.RequireFromString("913.37"),
		TopProducts: []ReportProductLine{
			{Name: "Walnut Desk", Quantity: 5},
			{Name: "Lamp", Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, *sends, 1)
	assert.Contains(t, (*sends)[0].msg, "913.37")
	assert.Contains(t, (*sends)[0].msg, "Walnut Desk")
}

func TestUnconfiguredSMTPSkipsSend(t *testing.T) {
	m, sends := newTestMailer(t, config.SMTPConfig{AppName: "Tienda"})

	require.NoError(t, m.SendWelcome(context.Background(), "ana@example.com", "Ana"))
	assert.Empty(t, *sends, "no wire call when smtp is unconfigured")
}
