package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestRangeUsesReportTimezone(t *testing.T) {
	loc := kolkata(t)
	// Wednesday evening in UTC is already Thursday morning in Kolkata.
	now := time.Date(2024, time.March, 13, 22, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		reportType enums.ReportType
		start      time.Time
		end        time.Time
	}{
		{"daily", enums.ReportTypeDaily, time.Date(2024, 3, 14, 0, 0, 0, 0, loc), time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{"weekly", enums.ReportTypeWeekly, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), time.Date(2024, 3, 17, 0, 0, 0, 0, loc)},
		{"monthly", enums.ReportTypeMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), time.Date(2024, 4, 1, 0, 0, 0, 0, loc)},
		{"yearly", enums.ReportTypeYearly, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2025, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := Range(tc.reportType, "", "", now, loc)
			if err != nil {
				t.Fatalf("range: %v", err)
			}
			if !start.Equal(tc.start) {
				t.Fatalf("start: expected %s got %s", tc.start, start)
			}
			if !end.Equal(tc.end.Add(-time.Nanosecond)) {
				t.Fatalf("end: expected just before %s got %s", tc.end, end)
			}
		})
	}
}

func TestRangeCustom(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, time.March, 13, 10, 0, 0, 0, loc)

	start, end, err := Range(enums.ReportTypeCustom, "2024-02-01", "2024-02-29", now, loc)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)) {
		t.Fatalf("unexpected end %s", end)
	}

	start, end, err = Range(enums.ReportTypeCustom, "", "", now, loc)
	if err != nil {
		t.Fatalf("range without dates: %v", err)
	}
	sunday := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	if !start.Equal(sunday) || !end.Equal(sunday.AddDate(0, 0, 1).Add(-time.Nanosecond)) {
		t.Fatalf("expected the week's first day, got %s - %s", start, end)
	}
}

func TestRangeCustomRejectsBadInput(t *testing.T) {
	now := time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

	if _, _, err := Range(enums.ReportTypeCustom, "2024-03-10", "2024-03-01", now, time.UTC); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
	if _, _, err := Range(enums.ReportTypeCustom, "10/03/2024", "", now, time.UTC); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for malformed date, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	code := "FEST"
	empty := ""
	rows := []OrderRow{
		{TotalPrice: decimal.NewFromInt(1000), Discount: decimal.NewFromInt(100), CouponCode: &code},
		{TotalPrice: decimal.NewFromInt(550), Discount: decimal.NewFromInt(50)},
		{TotalPrice: decimal.RequireFromString("99.50"), Discount: decimal.NewFromInt(10), CouponCode: &empty},
	}

	got := Summarize(rows)
	if got.OrdersCount != 3 {
		t.Fatalf("expected 3 orders, got %d", got.OrdersCount)
	}
	if !got.TotalSales.Equal(decimal.RequireFromString("1649.50")) {
		t.Fatalf("unexpected total sales %s", got.TotalSales)
	}
	if !got.TotalDiscount.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("unexpected total discount %s", got.TotalDiscount)
	}
	if !got.CouponDeductions.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected coupon deductions %s", got.CouponDeductions)
	}

	if zero := Summarize(nil); zero.OrdersCount != 0 || !zero.TotalSales.IsZero() {
		t.Fatalf("expected empty summary, got %+v", zero)
	}
}
