package models

import (
	"strings"
	"time"

	"spinwin/internal/utils"
)

// Field fallback chains for spinResults documents.
var (
	ResultFields   = utils.FieldChain{"result", "winner"}
	PrizeFields    = utils.FieldChain{"winner", "result"}
	SessionFields  = utils.FieldChain{"sessionId", "sessionID", "session"}
	DiscountFields = utils.FieldChain{"discount", "discountGiven", "couponAmount"}
)

// Spin is one spinResults document after normalization. Nothing past this
// type sees the loosely typed stored form.
type Spin struct {
	ID          string
	Name        string
	Surname     string
	SessionID   string
	IPAddress   string
	UserAgent   string
	RouteName   string // as stored
	Route       string // canonical
	Timestamp   *time.Time
	InTime      *time.Time
	OutTime     *time.Time
	AmountSpent float64
	PrizeAmount float64
	Discount    float64
	Result      string // result, falling back to winner
	Prize       string // winner, falling back to result
	PrizeType   string
}

// SpinFromDocument normalizes a raw document. Malformed fields become zero
// values; they never make the conversion fail.
func SpinFromDocument(doc map[string]interface{}) *Spin {
	s := &Spin{
		ID:          utils.AsString(doc["_id"]),
		Name:        utils.AsString(doc["name"]),
		Surname:     utils.AsString(doc["surname"]),
		SessionID:   SessionFields.String(doc),
		IPAddress:   utils.AsString(doc["ipAddress"]),
		UserAgent:   utils.AsString(doc["userAgent"]),
		RouteName:   utils.AsString(doc["routeName"]),
		AmountSpent: utils.ParseMoney(doc["amountSpent"]),
		PrizeAmount: utils.ParseMoney(doc["prizeAmount"]),
		Result:      ResultFields.String(doc),
		Prize:       PrizeFields.String(doc),
		PrizeType:   utils.AsString(doc["prizeType"]),
	}
	s.Route = utils.CanonicalKey(s.RouteName)

	if v, ok := DiscountFields.Lookup(doc); ok {
		s.Discount = utils.ParseMoney(v)
	}
	if s.PrizeType == "" {
		s.PrizeType = utils.DefaultPrizeType
	}

	if ts, ok := utils.ResolveTimestamp(doc); ok {
		s.Timestamp = &ts
	}
	if in, ok := utils.CoerceTime(doc["inTime"]); ok {
		s.InTime = &in
	}
	if out, ok := utils.CoerceTime(doc["outTime"]); ok {
		s.OutTime = &out
	}

	return s
}

// At is the effective timestamp, or the zero time when unresolved.
func (s *Spin) At() time.Time {
	if s.Timestamp == nil {
		return time.Time{}
	}
	return *s.Timestamp
}

// FullName joins first and last name, trimmed.
func (s *Spin) FullName() string {
	return strings.TrimSpace(s.Name + " " + s.Surname)
}

// VisitorKey derives the grouping key for a spin: full name, then session,
// then IP address, each trimmed and lowercased. An empty key means the spin
// counts toward volume but belongs to no visitor.
func (s *Spin) VisitorKey() string {
	if key := utils.CanonicalKey(s.FullName()); key != "" {
		return key
	}
	if key := utils.CanonicalKey(s.SessionID); key != "" {
		return key
	}
	return utils.CanonicalKey(s.IPAddress)
}

// DwellSeconds is the time between in and out, when both are known.
func (s *Spin) DwellSeconds() (float64, bool) {
	if s.InTime == nil || s.OutTime == nil {
		return 0, false
	}
	return s.OutTime.Sub(*s.InTime).Seconds(), true
}

// SpinItem is the list projection served by /api/spin-results.
type SpinItem struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Surname     string     `json:"surname"`
	SessionID   string     `json:"sessionId"`
	IPAddress   string     `json:"ipAddress"`
	UserAgent   string     `json:"userAgent"`
	RouteName   string     `json:"routeName"`
	Timestamp   time.Time  `json:"createdAt"`
	InTime      *time.Time `json:"inTime,omitempty"`
	OutTime     *time.Time `json:"outTime,omitempty"`
	AmountSpent float64    `json:"amountSpent"`
	PrizeAmount float64    `json:"prizeAmount"`
	Discount    float64    `json:"discount"`
	Result      string     `json:"result"`
	Winner      string     `json:"winner"`
	PrizeType   string     `json:"prizeType"`
}

func (s *Spin) ToItem() SpinItem {
	return SpinItem{
		ID:          s.ID,
		Name:        s.Name,
		Surname:     s.Surname,
		SessionID:   s.SessionID,
		IPAddress:   s.IPAddress,
		UserAgent:   s.UserAgent,
		RouteName:   s.RouteName,
		Timestamp:   s.At(),
		InTime:      s.InTime,
		OutTime:     s.OutTime,
		AmountSpent: s.AmountSpent,
		PrizeAmount: s.PrizeAmount,
		Discount:    s.Discount,
		Result:      s.Result,
		Winner:      s.Prize,
		PrizeType:   s.PrizeType,
	}
}
