package reports

import (
	"strings"
	"time"

	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

const dateLayout = "2006-01-02"

// Range resolves the inclusive window of a report relative to now, in loc.
// Weeks start on Sunday.
func Range(reportType enums.ReportType, startDate, endDate string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := startOfDay(now)

	switch reportType {
	case enums.ReportTypeWeekly:
		start := weekStart(today)
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), nil
	case enums.ReportTypeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	case enums.ReportTypeYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	case enums.ReportTypeCustom:
		start, err := parseDay(startDate, weekStart(today), loc)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "startDate must be YYYY-MM-DD")
		}
		end, err := parseDay(endDate, weekStart(today), loc)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "endDate must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not be before startDate")
		}
		return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	default:
		return today, today.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func parseDay(value string, fallback time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return time.ParseInLocation(dateLayout, value, loc)
}

// Summarize totals the orders of a report.
func Summarize(rows []OrderRow) Summary {
	summary := Summary{OrdersCount: len(rows)}
	for _, row := range rows {
		summary.TotalSales = summary.TotalSales.Add(row.TotalPrice)
		summary.TotalDiscount = summary.TotalDiscount.Add(row.Discount)
		if row.CouponCode != nil && *row.CouponCode != "" {
			summary.CouponDeductions = summary.CouponDeductions.Add(row.Discount)
		}
	}
	return summary
}
