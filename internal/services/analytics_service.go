package services

import (
	"context"
	"fmt"
	"time"

	"spinwin/internal/models"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

// AnalyticsParams are the parsed analytics query parameters.
type AnalyticsParams struct {
	RangeDays int
	From      *time.Time
	To        *time.Time
	Location  *time.Location
	RouteName string
}

// Window resolves the time range. rangeDays opens [now-N days, now]; an
// explicit from or to replaces the matching bound. rangeDays <= 0 is ignored.
func (p AnalyticsParams) Window(now time.Time) (Window, error) {
	var w Window
	if p.RangeDays > 0 {
		from := now.Add(-time.Duration(p.RangeDays) * 24 * time.Hour)
		to := now
		w.From, w.To = &from, &to
	}
	if p.From != nil {
		w.From = p.From
	}
	if p.To != nil {
		w.To = p.To
	}
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return Window{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidTimeRange,
			utils.FormatTimeISO(*w.From), utils.FormatTimeISO(*w.To))
	}
	return w, nil
}

func (p AnalyticsParams) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

type AnalyticsService interface {
	Summary(ctx context.Context, scope models.AccessScope, params AnalyticsParams) (*models.AnalyticsSummary, error)
	SpinResults(ctx context.Context, scope models.AccessScope, routeName string) (*models.SpinResultsResponse, error)
}

type analyticsService struct {
	engine *Engine
	logger *logger.Logger
}

func NewAnalyticsService(engine *Engine, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		engine: engine,
		logger: log,
	}
}

// Summary runs every named aggregation over one base set.
func (s *analyticsService) Summary(ctx context.Context, scope models.AccessScope, params AnalyticsParams) (*models.AnalyticsSummary, error) {
	now := s.engine.Now()
	window, err := params.Window(now)
	if err != nil {
		return nil, err
	}

	spins, err := s.engine.BaseSet(ctx, scope, params.RouteName, window)
	if err != nil {
		return nil, err
	}

	loc := params.location()
	visitors := visitorAggregates(spins)

	summary := &models.AnalyticsSummary{
		TotalSpins:        len(spins),
		ByResult:          resultDistribution(spins),
		ByDay:             dailyCounts(spins, loc),
		ByHour:            hourlyCounts(spins, loc),
		DayOfWeek:         dayOfWeekCounts(spins, loc),
		UniqueVisitors:    visitors.unique,
		ReturningVisitors: visitors.returning,
		TopReturning:      visitors.topReturning,
		AmountStats:       amountStats(spins),
		DwellTime:         dwellTime(spins),
		Devices:           deviceBreakdown(spins),
		ByRoute:           []models.RouteCount{},
		DailyFinancial:    dailyFinancial(spins, loc),
		WeeklyFinancial:   weeklyFinancial(spins, loc),
		MonthlyFinancial:  monthlyFinancial(spins, loc),
		TopDaily:          todayRollup(spins, now, loc, s.engine.currencySymbol),
	}

	if !scope.IsRestricted() && scope.EffectiveRoute(params.RouteName) == "" {
		summary.ByRoute = routeBreakdown(spins)
	}

	return summary, nil
}

// SpinResults lists the newest eligible spins.
func (s *analyticsService) SpinResults(ctx context.Context, scope models.AccessScope, routeName string) (*models.SpinResultsResponse, error) {
	spins, err := s.engine.Select(ctx, scope, routeName, Window{}, Selection{Newest: utils.MaxSpinResultItems})
	if err != nil {
		return nil, err
	}

	items := make([]models.SpinItem, 0, len(spins))
	for i := len(spins) - 1; i >= 0; i-- {
		items = append(items, spins[i].ToItem())
	}

	return &models.SpinResultsResponse{Items: items}, nil
}
