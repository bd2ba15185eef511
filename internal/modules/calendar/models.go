// Package calendar provides trading-calendar lookups and window resolution.
package calendar

import "strings"

// TradingDay is one row of the trading calendar reference data.
// Day is the business key in compact YYYYMMDD form. A day can be a working
// day without being a trading day (and, for some markets, vice versa).
type TradingDay struct {
	Day          string `json:"day"`
	IsTradingDay bool   `json:"isTradingDay"`
	IsWorkingDay bool   `json:"isWorkingDay"`
	Comments     string `json:"comments,omitempty"`
}

// ISODate returns the day in YYYY-MM-DD form.
func (d TradingDay) ISODate() string {
	return FormatISO(d.Day)
}

// FormatISO converts a compact YYYYMMDD date to YYYY-MM-DD.
// Dates already containing dashes are returned unchanged.
func FormatISO(day string) string {
	if strings.Contains(day, "-") || len(day) != 8 {
		return day
	}
	return day[0:4] + "-" + day[4:6] + "-" + day[6:8]
}

// FormatCompact converts an ISO YYYY-MM-DD date to compact YYYYMMDD form.
func FormatCompact(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// TradingDaysRequest echoes the caller's original query parameters.
type TradingDaysRequest struct {
	Date string `json:"date"`
	N    int    `json:"n"`
}

// TradingDaysResponse is the payload of the previous-trading-days endpoint.
type TradingDaysResponse struct {
	StartDate        string             `json:"startDate"`
	EndDate          string             `json:"endDate"`
	TradingDaysCount int                `json:"tradingDaysCount"`
	TradingDays      []string           `json:"tradingDays"`
	OriginalInput    TradingDaysRequest `json:"originalInput"`
}
