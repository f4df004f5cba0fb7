package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/C00lPIXER/aperture/internal/reports"
	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

type reportGenerator interface {
	Generate(ctx context.Context, req reports.Request) (*reports.Report, error)
}

type SalesSummaryJobParams struct {
	Logger   *logger.Logger
	Reports  reportGenerator
	Location *time.Location
}

// NewSalesSummaryJob logs the previous day's sales totals in the reporting
// timezone.
func NewSalesSummaryJob(params SalesSummaryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reports == nil {
		return nil, fmt.Errorf("report generator required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &salesSummaryJob{logg: params.Logger, reports: params.Reports, loc: loc, now: time.Now}, nil
}

type salesSummaryJob struct {
	logg    *logger.Logger
	reports reportGenerator
	loc     *time.Location
	now     func() time.Time
}

func (j *salesSummaryJob) Name() string { return "daily-sales-summary" }

func (j *salesSummaryJob) Run(ctx context.Context) error {
	day := j.now().In(j.loc).AddDate(0, 0, -1).Format("2006-01-02")
	report, err := j.reports.Generate(ctx, reports.Request{
		ReportType: enums.ReportTypeCustom.String(),
		StartDate:  day,
		EndDate:    day,
	})
	if err != nil {
		return fmt.Errorf("generate sales summary: %w", err)
	}
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"day":               day,
		"orders":            report.ReportData.OrdersCount,
		"total_sales":       report.ReportData.TotalSales.StringFixed(2),
		"total_discount":    report.ReportData.TotalDiscount.StringFixed(2),
		"coupon_deductions": report.ReportData.CouponDeductions.StringFixed(2),
	}), "daily sales summary")
	return nil
}
