package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/enums"
)

// Request selects the report window. Dates are YYYY-MM-DD and only read for
// custom reports.
type Request struct {
	ReportType string `json:"reportType"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}

// Summary is the aggregate block shown above the order table.
type Summary struct {
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalDiscount    decimal.Decimal `json:"totalDiscount"`
	CouponDeductions decimal.Decimal `json:"couponDeductions"`
	OrdersCount      int             `json:"ordersCount"`
}

// OrderRow is one order as listed in a report.
type OrderRow struct {
	ID          uuid.UUID         `json:"id"`
	Customer    string            `json:"customer"`
	Items       int               `json:"items"`
	TotalPrice  decimal.Decimal   `json:"totalPrice"`
	Discount    decimal.Decimal   `json:"discount"`
	CouponCode  *string           `json:"couponCode,omitempty"`
	OrderStatus enums.OrderStatus `json:"orderStatus"`
	PlacedAt    time.Time         `json:"placedAt"`
}

type Report struct {
	Orders     []OrderRow `json:"orders"`
	ReportData Summary    `json:"reportData"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
}
