// Package notifications delivers transactional email over SMTP. All sends
// are best-effort from the callers' point of view: they log failures and
// continue, because the triggering operation has already succeeded.
package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acarreras/tienda-backend/pkg/config"
	"github.com/acarreras/tienda-backend/pkg/logger"
)

// sendFunc matches smtp.SendMail so tests can intercept the wire call.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders and dispatches the storefront's transactional emails.
// When SMTP is not configured every send is a logged no-op, so local
// environments work without a mail server.
type Mailer struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
	send sendFunc
}

// NewMailer builds a mailer from the SMTP configuration.
func NewMailer(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Mailer{cfg: cfg, logg: logg, send: smtp.SendMail}, nil
}

// OrderEmailLine is one purchased position rendered in the confirmation.
type OrderEmailLine struct {
	Name      string
	Reference string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderEmailData carries everything the confirmation template renders.
type OrderEmailData struct {
	OrderNumber string
	Items       []OrderEmailLine
	Subtotal    decimal.Decimal
	Shipping    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// ReportProductLine is one top-seller row in the daily report.
type ReportProductLine struct {
	Name     string
	Quantity int
}

// ReportEmailData carries the daily report figures.
type ReportEmailData struct {
	Date         string
	TotalOrders  int
	TotalRevenue decimal.Decimal
	TopProducts  []ReportProductLine
}

// SendOrderConfirmation emails the line items and computed totals for a
// freshly created order.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, data OrderEmailData) error {
	body, err := renderOrderConfirmation(data)
	if err != nil {
		return fmt.Errorf("render order confirmation: %w", err)
	}
	subject := fmt.Sprintf("Order confirmation %s", data.OrderNumber)
	return m.dispatch(ctx, to, subject, body)
}

// SendWelcome greets a freshly registered account.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	body, err := renderWelcome(welcomeData{Name: name, AppName: m.cfg.AppName})
	if err != nil {
		return fmt.Errorf("render welcome: %w", err)
	}
	return m.dispatch(ctx, to, fmt.Sprintf("Welcome to %s", m.cfg.AppName), body)
}

// SendLoginNotification tells the account owner about a new sign-in.
func (m *Mailer) SendLoginNotification(ctx context.Context, to, name string, at time.Time) error {
	body, err := renderLoginNotification(loginData{
		Name:    name,
		AppName: m.cfg.AppName,
		At:      at.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return fmt.Errorf("render login notification: %w", err)
	}
	return m.dispatch(ctx, to, fmt.Sprintf("New sign-in to %s", m.cfg.AppName), body)
}

// SendDailyReport emails yesterday's sales figures.
func (m *Mailer) SendDailyReport(ctx context.Context, to string, data ReportEmailData) error {
	body, err := renderDailyReport(data)
	if err != nil {
		return fmt.Errorf("render daily report: %w", err)
	}
	return m.dispatch(ctx, to, fmt.Sprintf("Daily sales report %s", data.Date), body)
}

func (m *Mailer) dispatch(ctx context.Context, to, subject, body string) error {
	if !m.cfg.Configured() {
		m.logg.Debug(m.logg.WithField(ctx, "subject", subject), "smtp not configured, skipping email")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := []byte("From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body)

	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
