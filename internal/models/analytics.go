package models

import "time"

type ResultBucket struct {
	Result           string  `json:"result"`
	Count            int     `json:"count"`
	TotalPrizeAmount float64 `json:"totalPrizeAmount"`
	AvgPrizeAmount   float64 `json:"avgPrizeAmount"`
	PrizeAmount      float64 `json:"prizeAmount"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type DayOfWeekCount struct {
	DayOfWeek int `json:"dow"`
	Count     int `json:"count"`
}

type TopReturning struct {
	FullName  string    `json:"fullName"`
	Visits    int       `json:"visits"`
	LastVisit time.Time `json:"lastVisit"`
}

type AmountStats struct {
	TotalAmountSpent float64 `json:"totalAmountSpent"`
	AvgAmountSpent   float64 `json:"avgAmountSpent"`
}

// DwellTime summarizes seconds between in and out times.
type DwellTime struct {
	AvgDwellSecs float64 `json:"avgDwellSecs"`
	MaxDwellSecs float64 `json:"maxDwellSecs"`
	MinDwellSecs float64 `json:"minDwellSecs"`
	Samples      int     `json:"samples"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

type RouteCount struct {
	RouteName string `json:"routeName"`
	Count     int    `json:"count"`
}

// FinancialTotals is shared by every period rollup.
// Income is max(0, sales - discount).
type FinancialTotals struct {
	Spins    int     `json:"spins"`
	Sales    float64 `json:"sales"`
	Discount float64 `json:"discount"`
	Income   float64 `json:"income"`
}

type DailyFinancial struct {
	Day string `json:"day"`
	FinancialTotals
}

type WeeklyFinancial struct {
	Week string `json:"week"`
	FinancialTotals
}

type MonthlyFinancial struct {
	Month string `json:"month"`
	FinancialTotals
}

type RecentSpin struct {
	CustomerName string    `json:"customerName"`
	Winner       string    `json:"winner"`
	SpinTime     time.Time `json:"spinTime"`
	PrizeAmount  string    `json:"prizeAmount"`
}

// TopDaily is the rollup for the current calendar day.
type TopDaily struct {
	Customers   int          `json:"customers"`
	Spins       int          `json:"spins"`
	Sales       float64      `json:"sales"`
	Discounts   float64      `json:"discounts"`
	PrizeAmount float64      `json:"prizeAmount"`
	Income      float64      `json:"income"`
	RecentSpins []RecentSpin `json:"recentSpins"`
}

type AnalyticsSummary struct {
	TotalSpins        int                `json:"totalSpins"`
	ByResult          []ResultBucket     `json:"byResult"`
	ByDay             []DayCount         `json:"byDay"`
	ByHour            []HourCount        `json:"byHour"`
	DayOfWeek         []DayOfWeekCount   `json:"dayOfWeek"`
	UniqueVisitors    int                `json:"uniqueVisitors"`
	ReturningVisitors int                `json:"returningVisitors"`
	TopReturning      []TopReturning     `json:"topReturning"`
	AmountStats       AmountStats        `json:"amountStats"`
	DwellTime         DwellTime          `json:"dwellTime"`
	Devices           []DeviceCount      `json:"devices"`
	ByRoute           []RouteCount       `json:"byRoute"`
	DailyFinancial    []DailyFinancial   `json:"dailyFinancial"`
	WeeklyFinancial   []WeeklyFinancial  `json:"weeklyFinancial"`
	MonthlyFinancial  []MonthlyFinancial `json:"monthlyFinancial"`
	TopDaily          TopDaily           `json:"topDaily"`
}

type SpinResultsResponse struct {
	Items []SpinItem `json:"items"`
}
