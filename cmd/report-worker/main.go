package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acarreras/tienda-backend/internal/notifications"
	ordersvc "github.com/acarreras/tienda-backend/internal/orders"
	"github.com/acarreras/tienda-backend/pkg/config"
	"github.com/acarreras/tienda-backend/pkg/db"
	"github.com/acarreras/tienda-backend/pkg/logger"
	"github.com/acarreras/tienda-backend/pkg/metrics"
	"github.com/acarreras/tienda-backend/pkg/migrate"
)

const jobName = "daily_sales_report"

// report-worker is a one-shot binary meant to run under an external
// scheduler. It aggregates the previous day's sales and mails the figures
// to the configured recipient.
func main() {
	var dayFlag string
	flag.StringVar(&dayFlag, "day", "", "report day as YYYY-MM-DD in UTC, defaults to yesterday")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "report-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "report-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.Report.Recipient == "" {
		logg.Error(context.Background(), "report recipient not configured", nil)
		os.Exit(1)
	}

	day, err := resolveDay(dayFlag)
	if err != nil {
		logg.Error(context.Background(), "invalid -day value", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	mailer, err := notifications.NewMailer(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Repo:   ordersvc.NewRepository(dbClient.DB()),
		Tx:     dbClient,
		Mailer: mailer,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"day": day.Format("2006-01-02"),
	})
	logg.Info(ctx, "running daily sales report")

	start := time.Now()
	err = runReport(ctx, orderService, mailer, cfg.Report.Recipient, day)
	jobMetrics.ObserveDuration(jobName, time.Since(start))
	if err != nil {
		jobMetrics.IncFailure(jobName)
		logg.Error(ctx, "daily sales report failed", err)
		os.Exit(1)
	}
	jobMetrics.IncSuccess(jobName)
	logg.Info(ctx, "daily sales report sent")
}

func runReport(ctx context.Context, orders ordersvc.Service, mailer *notifications.Mailer, recipient string, day time.Time) error {
	report, err := orders.DailyReport(ctx, day)
	if err != nil {
		return err
	}

	top := make([]notifications.ReportProductLine, 0, len(report.TopProducts))
	for _, entry := range report.TopProducts {
		top = append(top, notifications.ReportProductLine{
			Name:     entry.Name,
			Quantity: entry.Quantity,
		})
	}

	return mailer.SendDailyReport(ctx, recipient, notifications.ReportEmailData{
		Date:         report.Date,
		TotalOrders:  report.TotalOrders,
		TotalRevenue: report.TotalRevenue,
		TopProducts:  top,
	})
}

func resolveDay(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1), nil
	}
	return time.Parse("2006-01-02", raw)
}
