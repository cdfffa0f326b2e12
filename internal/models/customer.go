package models

import "time"

// CustomerSummary is one visitor-key group in a search result.
type CustomerSummary struct {
	CustomerID      string    `json:"customerId"`
	FullName        string    `json:"fullName"`
	SessionID       string    `json:"sessionId"`
	Visits          int       `json:"visits"`
	TotalSpent      float64   `json:"totalSpent"`
	AvgSpent        float64   `json:"avgSpent"`
	LastVisit       time.Time `json:"lastVisit"`
	FirstVisit      time.Time `json:"firstVisit"`
	LastPrize       string    `json:"lastPrize"`
	LastPrizeAmount float64   `json:"lastPrizeAmount"`
	UserAgent       string    `json:"userAgent"`
	IPAddress       string    `json:"ipAddress"`
	CustomerType    string    `json:"customerType"`
}

type CustomerSearchResult struct {
	Customers  []CustomerSummary `json:"customers"`
	Total      int               `json:"total"`
	SearchTerm string            `json:"searchTerm"`
}

type CustomerSpin struct {
	FullName    string    `json:"fullName"`
	SessionID   string    `json:"sessionId"`
	SpinDate    time.Time `json:"spinDate"`
	AmountSpent float64   `json:"amountSpent"`
	PrizeAmount float64   `json:"prizeAmount"`
	Prize       string    `json:"prize"`
	PrizeType   string    `json:"prizeType"`
	UserAgent   string    `json:"userAgent"`
	IPAddress   string    `json:"ipAddress"`
	RouteName   string    `json:"routeName"`
}

type CustomerTotals struct {
	FullName         string    `json:"fullName"`
	SessionID        string    `json:"sessionId"`
	TotalSpins       int       `json:"totalSpins"`
	TotalSpent       float64   `json:"totalSpent"`
	TotalPrizeAmount float64   `json:"totalPrizeAmount"`
	AvgSpent         float64   `json:"avgSpent"`
	FirstVisit       time.Time `json:"firstVisit"`
	LastVisit        time.Time `json:"lastVisit"`
}

type DailyActivity struct {
	Date   string  `json:"date"`
	Spins  int     `json:"spins"`
	Spent  float64 `json:"spent"`
	Prizes float64 `json:"prizes"`
}

type CustomerDetail struct {
	Customer      CustomerTotals  `json:"customer"`
	Spins         []CustomerSpin  `json:"spins"`
	DailyActivity []DailyActivity `json:"dailyActivity"`
}

type MonthlyComparison struct {
	ThisMonth int    `json:"thisMonth"`
	LastMonth int    `json:"lastMonth"`
	Growth    string `json:"growth"`
}
