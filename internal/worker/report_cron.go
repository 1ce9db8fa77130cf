package worker

// report_cron.go
// Scheduled nightly job: aggregates the previous day's orders through the
// read-only reporting operations, persists a SalesReport row, and renders a
// PDF artifact. No shared in-memory state with the request path — everything
// goes through the store.

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/infra"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
)

// DailyAggregator is the slice of the reporting service the cron job needs.
type DailyAggregator interface {
	DailySummary(ctx context.Context, date string) (*dto.DailySummaryResponse, error)
	PopularDishes(ctx context.Context, limit int) ([]dto.DishPopularity, error)
}

// ReportCronConfig holds all dependencies for the nightly report job.
type ReportCronConfig struct {
	Aggregator  DailyAggregator
	ReportRepo  repository.SalesReportRepository
	StoragePath string
	Timezone    string
}

// StartReportCron schedules the nightly run shortly after midnight in the
// configured timezone and stops the scheduler on context cancellation.
func StartReportCron(ctx context.Context, cfg ReportCronConfig) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	sched := cron.New(cron.WithLocation(loc))
	// 00:05 — a small margin so midnight-straddling requests settle first.
	if _, err := sched.AddFunc("5 0 * * *", func() {
		yesterday := time.Now().In(loc).AddDate(0, 0, -1).Format("2006-01-02")
		runDailyReport(ctx, cfg, yesterday)
	}); err != nil {
		return err
	}
	sched.Start()
	log.Info().Str("timezone", cfg.Timezone).Msg("report_cron: started")

	go func() {
		<-ctx.Done()
		sched.Stop()
		log.Info().Msg("report_cron: shutting down")
	}()
	return nil
}

func runDailyReport(ctx context.Context, cfg ReportCronConfig, date string) {
	summary, err := cfg.Aggregator.DailySummary(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("report_cron: daily summary failed")
		return
	}

	dishes, err := cfg.Aggregator.PopularDishes(ctx, 5)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("report_cron: popular dishes failed")
		return
	}

	rep := &model.SalesReport{
		Date:         date,
		TotalOrders:  summary.TotalOrders,
		TotalRevenue: summary.TotalRevenue,
	}
	if len(dishes) > 0 {
		top := dishes[0].Name
		rep.TopDish = &top
	}

	lines := make([]infra.ReportLine, 0, len(dishes))
	for _, d := range dishes {
		lines = append(lines, infra.ReportLine{Name: d.Name, TimesOrdered: d.TimesOrdered})
	}
	pdfPath, err := infra.GenerateSalesReportPDF(date, summary.TotalOrders, summary.TotalRevenue, lines, cfg.StoragePath)
	if err != nil {
		// The report row is still worth persisting without the artifact.
		log.Error().Err(err).Str("date", date).Msg("report_cron: PDF render failed")
	} else {
		rep.PDFPath = &pdfPath
	}

	if err := cfg.ReportRepo.Upsert(ctx, rep); err != nil {
		log.Error().Err(err).Str("date", date).Msg("report_cron: persist failed")
		return
	}

	log.Info().
		Str("date", date).
		Int("total_orders", summary.TotalOrders).
		Str("total_revenue", summary.TotalRevenue.StringFixed(2)).
		Msg("report_cron: daily sales report generated")
}
