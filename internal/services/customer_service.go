package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"spinwin/internal/models"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

type CustomerService interface {
	Search(ctx context.Context, scope models.AccessScope, search string, limit int) (*models.CustomerSearchResult, error)
	Detail(ctx context.Context, scope models.AccessScope, customerID string, loc *time.Location) (*models.CustomerDetail, error)
	MonthlyComparison(ctx context.Context, scope models.AccessScope, loc *time.Location) (*models.MonthlyComparison, error)
}

type customerService struct {
	engine *Engine
	logger *logger.Logger
}

func NewCustomerService(engine *Engine, log *logger.Logger) CustomerService {
	return &customerService{
		engine: engine,
		logger: log,
	}
}

func matchesSearch(s *models.Spin, term string) bool {
	return utils.ContainsFold(s.FullName(), term) ||
		utils.ContainsFold(s.SessionID, term) ||
		utils.ContainsFold(s.IPAddress, term) ||
		utils.ContainsFold(s.UserAgent, term)
}

func (s *customerService) Search(ctx context.Context, scope models.AccessScope, search string, limit int) (*models.CustomerSearchResult, error) {
	if limit <= 0 {
		limit = utils.DefaultCustomerSearchLimit
	}

	spins, err := s.engine.BaseSet(ctx, scope, "", Window{})
	if err != nil {
		return nil, err
	}

	if term := strings.TrimSpace(search); term != "" {
		spins = lo.Filter(spins, func(sp *models.Spin, _ int) bool { return matchesSearch(sp, term) })
	}

	groups := visitorGroups(spins)
	customers := make([]models.CustomerSummary, 0, len(groups))
	for key, members := range groups {
		customers = append(customers, summarizeCustomer(key, members))
	}

	sort.Slice(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		if !a.LastVisit.Equal(b.LastVisit) {
			return a.LastVisit.After(b.LastVisit)
		}
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		return a.CustomerID < b.CustomerID
	})
	if len(customers) > limit {
		customers = customers[:limit]
	}

	return &models.CustomerSearchResult{
		Customers:  customers,
		Total:      len(customers),
		SearchTerm: search,
	}, nil
}

// summarizeCustomer folds a chronological group into one summary. Identity
// fields keep the most recent non-empty value.
func summarizeCustomer(key string, members []*models.Spin) models.CustomerSummary {
	first, last := members[0], members[len(members)-1]
	summary := models.CustomerSummary{
		CustomerID:      key,
		Visits:          len(members),
		FirstVisit:      first.At(),
		LastVisit:       last.At(),
		LastPrize:       last.Prize,
		LastPrizeAmount: last.PrizeAmount,
		CustomerType:    customerType(len(members)),
	}

	total := 0.0
	for _, sp := range members {
		total += sp.AmountSpent
		if name := sp.FullName(); name != "" {
			summary.FullName = name
		}
		if sp.SessionID != "" {
			summary.SessionID = sp.SessionID
		}
		if sp.UserAgent != "" {
			summary.UserAgent = sp.UserAgent
		}
		if sp.IPAddress != "" {
			summary.IPAddress = sp.IPAddress
		}
	}
	summary.TotalSpent = utils.RoundMoney(total)
	summary.AvgSpent = utils.RoundMoney(total / float64(len(members)))

	return summary
}

func customerType(visits int) string {
	switch {
	case visits >= utils.LoyalCustomerVisits:
		return utils.CustomerTypeLoyal
	case visits >= utils.ReturningCustomerVisits:
		return utils.CustomerTypeReturning
	default:
		return utils.CustomerTypeNew
	}
}

func (s *customerService) Detail(ctx context.Context, scope models.AccessScope, customerID string, loc *time.Location) (*models.CustomerDetail, error) {
	key := utils.CanonicalKey(customerID)
	if key == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if loc == nil {
		loc = time.UTC
	}

	matched, err := s.engine.Select(ctx, scope, "", Window{}, Selection{Visitor: key})
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, ErrCustomerNotFound
	}

	newest := matched[len(matched)-1]
	totals := models.CustomerTotals{
		FullName:   newest.FullName(),
		SessionID:  newest.SessionID,
		TotalSpins: len(matched),
		FirstVisit: matched[0].At(),
		LastVisit:  newest.At(),
	}

	activity := make(map[string]*models.DailyActivity)
	customerSpins := make([]models.CustomerSpin, 0, utils.MaxCustomerDetailSpins)
	var spent, prizes float64
	for i := len(matched) - 1; i >= 0; i-- {
		sp := matched[i]
		spent += sp.AmountSpent
		prizes += sp.PrizeAmount

		day := utils.DayKey(sp.At(), loc)
		row, ok := activity[day]
		if !ok {
			row = &models.DailyActivity{Date: day}
			activity[day] = row
		}
		row.Spins++
		row.Spent += sp.AmountSpent
		row.Prizes += sp.PrizeAmount

		if len(customerSpins) < utils.MaxCustomerDetailSpins {
			customerSpins = append(customerSpins, toCustomerSpin(sp))
		}
	}
	totals.TotalSpent = utils.RoundMoney(spent)
	totals.TotalPrizeAmount = utils.RoundMoney(prizes)
	totals.AvgSpent = utils.RoundMoney(spent / float64(len(matched)))

	days := sortedKeys(activity)
	daily := make([]models.DailyActivity, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		row := *activity[days[i]]
		row.Spent = utils.RoundMoney(row.Spent)
		row.Prizes = utils.RoundMoney(row.Prizes)
		daily = append(daily, row)
	}

	return &models.CustomerDetail{
		Customer:      totals,
		Spins:         customerSpins,
		DailyActivity: daily,
	}, nil
}

func toCustomerSpin(sp *models.Spin) models.CustomerSpin {
	return models.CustomerSpin{
		FullName:    sp.FullName(),
		SessionID:   sp.SessionID,
		SpinDate:    sp.At(),
		AmountSpent: sp.AmountSpent,
		PrizeAmount: sp.PrizeAmount,
		Prize:       sp.Prize,
		PrizeType:   sp.PrizeType,
		UserAgent:   sp.UserAgent,
		IPAddress:   sp.IPAddress,
		RouteName:   sp.RouteName,
	}
}

// MonthlyComparison counts unique visitors this month so far against the
// whole previous month, with month boundaries taken in loc.
func (s *customerService) MonthlyComparison(ctx context.Context, scope models.AccessScope, loc *time.Location) (*models.MonthlyComparison, error) {
	if loc == nil {
		loc = time.UTC
	}

	now := s.engine.Now().In(loc)
	thisMonthStart := utils.StartOfMonth(now)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	spins, err := s.engine.BaseSet(ctx, scope, "", Window{From: &lastMonthStart, To: &now})
	if err != nil {
		return nil, err
	}

	thisMonth := lo.Filter(spins, func(sp *models.Spin, _ int) bool { return !sp.At().Before(thisMonthStart) })
	lastMonth := lo.Filter(spins, func(sp *models.Spin, _ int) bool { return sp.At().Before(thisMonthStart) })

	thisCount, lastCount := uniqueVisitors(thisMonth), uniqueVisitors(lastMonth)
	return &models.MonthlyComparison{
		ThisMonth: thisCount,
		LastMonth: lastCount,
		Growth:    utils.GrowthPercent(thisCount, lastCount),
	}, nil
}
