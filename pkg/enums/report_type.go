package enums

import "strings"

// ReportType selects the date range of a sales report.
type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
	ReportTypeYearly  ReportType = "yearly"
	ReportTypeCustom  ReportType = "custom"
)

var validReportTypes = []ReportType{
	ReportTypeDaily,
	ReportTypeWeekly,
	ReportTypeMonthly,
	ReportTypeYearly,
	ReportTypeCustom,
}

func (r ReportType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportType.
func (r ReportType) IsValid() bool {
	for _, candidate := range validReportTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportType never fails: unknown values fall back to a daily report.
func ParseReportType(value string) ReportType {
	normalized := ReportType(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized
	}
	return ReportTypeDaily
}
