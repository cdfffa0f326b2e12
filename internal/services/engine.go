package services

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

// Window is an optional inclusive time range.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Engine builds the base eligible set and runs the named aggregations over
// it. It keeps no state between calls.
type Engine struct {
	spinRepo       interfaces.SpinRepository
	currencySymbol string
	now            func() time.Time
	logger         *logger.Logger
}

func NewEngine(spinRepo interfaces.SpinRepository, currencySymbol string, log *logger.Logger) *Engine {
	return &Engine{
		spinRepo:       spinRepo,
		currencySymbol: currencySymbol,
		now:            time.Now,
		logger:         log,
	}
}

// WithClock returns a copy of the engine reading time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	clone := *e
	clone.now = now
	return &clone
}

func (e *Engine) Now() time.Time {
	return e.now()
}

// Selection narrows a base set past scope, route and window. Visitor is a
// canonical visitor key; Newest > 0 keeps only the newest N spins.
type Selection struct {
	Visitor string
	Newest  int
}

// BaseSet loads every spin the scope may see, narrowed by the requested
// route and window. All aggregations of one response read this same slice.
func (e *Engine) BaseSet(ctx context.Context, scope models.AccessScope, requestedRoute string, window Window) ([]*models.Spin, error) {
	return e.Select(ctx, scope, requestedRoute, window, Selection{})
}

// Select is BaseSet with the extra narrowing pushed down to the repository.
func (e *Engine) Select(ctx context.Context, scope models.AccessScope, requestedRoute string, window Window, sel Selection) ([]*models.Spin, error) {
	filter := interfaces.SpinFilter{
		Route:   scope.EffectiveRoute(requestedRoute),
		From:    window.From,
		To:      window.To,
		Visitor: sel.Visitor,
		Newest:  sel.Newest,
	}

	start := time.Now()
	spins, err := e.spinRepo.FindEligible(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load base set: %w", err)
	}

	e.logger.WithContext(ctx).LogPerformanceMetric("base_set_load",
		float64(time.Since(start).Milliseconds()), "ms", map[string]string{
			"route": filter.Route,
			"spins": strconv.Itoa(len(spins)),
		})

	return spins, nil
}

func resultDistribution(spins []*models.Spin) []models.ResultBucket {
	groups := lo.GroupBy(spins, func(s *models.Spin) string { return s.Result })

	buckets := make([]models.ResultBucket, 0, len(groups))
	for result, members := range groups {
		total := lo.SumBy(members, func(s *models.Spin) float64 { return s.PrizeAmount })
		avg := total / float64(len(members))
		buckets = append(buckets, models.ResultBucket{
			Result:           result,
			Count:            len(members),
			TotalPrizeAmount: utils.RoundMoney(total),
			AvgPrizeAmount:   utils.RoundMoney(avg),
			PrizeAmount:      utils.Round(avg, 0),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Result < buckets[j].Result
	})
	return buckets
}

func dailyCounts(spins []*models.Spin, loc *time.Location) []models.DayCount {
	counts := lo.CountValuesBy(spins, func(s *models.Spin) string { return utils.DayKey(s.At(), loc) })

	days := make([]models.DayCount, 0, len(counts))
	for _, day := range sortedKeys(counts) {
		days = append(days, models.DayCount{Day: day, Count: counts[day]})
	}
	return days
}

func hourlyCounts(spins []*models.Spin, loc *time.Location) []models.HourCount {
	counts := lo.CountValuesBy(spins, func(s *models.Spin) int { return s.At().In(loc).Hour() })

	hours := make([]models.HourCount, 0, len(counts))
	for _, hour := range sortedKeys(counts) {
		hours = append(hours, models.HourCount{Hour: hour, Count: counts[hour]})
	}
	return hours
}

func dayOfWeekCounts(spins []*models.Spin, loc *time.Location) []models.DayOfWeekCount {
	counts := lo.CountValuesBy(spins, func(s *models.Spin) int { return utils.DayOfWeek(s.At(), loc) })

	dows := make([]models.DayOfWeekCount, 0, len(counts))
	for _, dow := range sortedKeys(counts) {
		dows = append(dows, models.DayOfWeekCount{DayOfWeek: dow, Count: counts[dow]})
	}
	return dows
}

func amountStats(spins []*models.Spin) models.AmountStats {
	if len(spins) == 0 {
		return models.AmountStats{}
	}
	total := lo.SumBy(spins, func(s *models.Spin) float64 { return s.AmountSpent })
	return models.AmountStats{
		TotalAmountSpent: utils.RoundMoney(total),
		AvgAmountSpent:   utils.RoundMoney(total / float64(len(spins))),
	}
}

func dwellTime(spins []*models.Spin) models.DwellTime {
	var stats models.DwellTime
	var sum float64
	for _, s := range spins {
		secs, ok := s.DwellSeconds()
		if !ok {
			continue
		}
		if stats.Samples == 0 || secs > stats.MaxDwellSecs {
			stats.MaxDwellSecs = secs
		}
		if stats.Samples == 0 || secs < stats.MinDwellSecs {
			stats.MinDwellSecs = secs
		}
		sum += secs
		stats.Samples++
	}
	if stats.Samples > 0 {
		stats.AvgDwellSecs = utils.RoundMoney(sum / float64(stats.Samples))
	}
	return stats
}

// Checked in order; the first match wins.
var deviceClasses = []struct {
	device  string
	pattern *regexp.Regexp
}{
	{utils.DeviceAndroid, regexp.MustCompile(`(?i)android`)},
	{utils.DeviceIOS, regexp.MustCompile(`(?i)iphone|ipad|ipod|ios`)},
	{utils.DeviceDesktop, regexp.MustCompile(`(?i)windows|macintosh|mac os x|linux|x11`)},
}

// ClassifyDevice maps a user agent to Android, iOS, Desktop or Other.
func ClassifyDevice(userAgent string) string {
	for _, class := range deviceClasses {
		if class.pattern.MatchString(userAgent) {
			return class.device
		}
	}
	return utils.DeviceOther
}

func deviceBreakdown(spins []*models.Spin) []models.DeviceCount {
	counts := lo.CountValuesBy(spins, func(s *models.Spin) string { return ClassifyDevice(s.UserAgent) })

	devices := make([]models.DeviceCount, 0, len(counts))
	for device, count := range counts {
		devices = append(devices, models.DeviceCount{Device: device, Count: count})
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Count != devices[j].Count {
			return devices[i].Count > devices[j].Count
		}
		return devices[i].Device < devices[j].Device
	})
	return devices
}

type visitorStats struct {
	unique       int
	returning    int
	topReturning []models.TopReturning
}

func visitorAggregates(spins []*models.Spin) visitorStats {
	groups := visitorGroups(spins)

	stats := visitorStats{unique: len(groups), topReturning: []models.TopReturning{}}
	type returner struct {
		key string
		models.TopReturning
	}
	var returners []returner
	for key, members := range groups {
		if len(members) < 2 {
			continue
		}
		latest := members[len(members)-1]
		returners = append(returners, returner{
			key: key,
			TopReturning: models.TopReturning{
				FullName:  latestFullName(members),
				Visits:    len(members),
				LastVisit: latest.At(),
			},
		})
	}
	stats.returning = len(returners)

	sort.Slice(returners, func(i, j int) bool {
		a, b := returners[i], returners[j]
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		if !a.LastVisit.Equal(b.LastVisit) {
			return a.LastVisit.After(b.LastVisit)
		}
		return a.key < b.key
	})

	for i, r := range returners {
		if i == utils.TopReturningLimit {
			break
		}
		stats.topReturning = append(stats.topReturning, r.TopReturning)
	}
	return stats
}

// latestFullName walks a chronological group backwards for a non-empty name.
func latestFullName(members []*models.Spin) string {
	for i := len(members) - 1; i >= 0; i-- {
		if name := members[i].FullName(); name != "" {
			return name
		}
	}
	return ""
}

func routeBreakdown(spins []*models.Spin) []models.RouteCount {
	counts := lo.CountValuesBy(spins, func(s *models.Spin) string { return s.Route })

	routes := make([]models.RouteCount, 0, len(counts))
	for route, count := range counts {
		routes = append(routes, models.RouteCount{RouteName: route, Count: count})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Count != routes[j].Count {
			return routes[i].Count > routes[j].Count
		}
		return routes[i].RouteName < routes[j].RouteName
	})
	return routes
}

func financialTotals(spins []*models.Spin) models.FinancialTotals {
	sales := utils.RoundMoney(lo.SumBy(spins, func(s *models.Spin) float64 { return s.AmountSpent }))
	discount := utils.RoundMoney(lo.SumBy(spins, func(s *models.Spin) float64 { return s.Discount }))
	return models.FinancialTotals{
		Spins:    len(spins),
		Sales:    sales,
		Discount: discount,
		Income:   income(sales, discount),
	}
}

// income is max(0, sales - discount) over already rounded figures.
func income(sales, discount float64) float64 {
	if sales <= discount {
		return 0
	}
	return utils.RoundMoney(sales - discount)
}

// periodRollup groups spins by a calendar key, sorts keys ascending and keeps
// the most recent limit groups.
func periodRollup(spins []*models.Spin, key func(time.Time) string, limit int) ([]string, map[string]models.FinancialTotals) {
	groups := lo.GroupBy(spins, func(s *models.Spin) string { return key(s.At()) })
	keys := sortedKeys(groups)
	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	totals := make(map[string]models.FinancialTotals, len(keys))
	for _, k := range keys {
		totals[k] = financialTotals(groups[k])
	}
	return keys, totals
}

func dailyFinancial(spins []*models.Spin, loc *time.Location) []models.DailyFinancial {
	keys, totals := periodRollup(spins, func(t time.Time) string { return utils.DayKey(t, loc) }, utils.DailyRollupLimit)
	return lo.Map(keys, func(k string, _ int) models.DailyFinancial {
		return models.DailyFinancial{Day: k, FinancialTotals: totals[k]}
	})
}

func weeklyFinancial(spins []*models.Spin, loc *time.Location) []models.WeeklyFinancial {
	keys, totals := periodRollup(spins, func(t time.Time) string { return utils.WeekKey(t, loc) }, utils.WeeklyRollupLimit)
	return lo.Map(keys, func(k string, _ int) models.WeeklyFinancial {
		return models.WeeklyFinancial{Week: k, FinancialTotals: totals[k]}
	})
}

func monthlyFinancial(spins []*models.Spin, loc *time.Location) []models.MonthlyFinancial {
	keys, totals := periodRollup(spins, func(t time.Time) string { return utils.MonthKey(t, loc) }, utils.MonthlyRollupLimit)
	return lo.Map(keys, func(k string, _ int) models.MonthlyFinancial {
		return models.MonthlyFinancial{Month: k, FinancialTotals: totals[k]}
	})
}

// todayRollup restricts the base set to the calendar day containing now.
func todayRollup(spins []*models.Spin, now time.Time, loc *time.Location, currencySymbol string) models.TopDaily {
	today := utils.DayKey(now, loc)
	todays := lo.Filter(spins, func(s *models.Spin, _ int) bool { return utils.DayKey(s.At(), loc) == today })

	totals := financialTotals(todays)
	prizes := lo.SumBy(todays, func(s *models.Spin) float64 { return s.PrizeAmount })

	return models.TopDaily{
		Customers:   uniqueVisitors(todays),
		Spins:       totals.Spins,
		Sales:       totals.Sales,
		Discounts:   totals.Discount,
		PrizeAmount: utils.RoundMoney(prizes),
		Income:      totals.Income,
		RecentSpins: recentSpins(todays, currencySymbol),
	}
}

// recentSpins expects chronological input and returns newest first.
func recentSpins(spins []*models.Spin, currencySymbol string) []models.RecentSpin {
	recent := make([]models.RecentSpin, 0, utils.RecentSpinsLimit)
	for i := len(spins) - 1; i >= 0 && len(recent) < utils.RecentSpinsLimit; i-- {
		s := spins[i]
		recent = append(recent, models.RecentSpin{
			CustomerName: s.FullName(),
			Winner:       s.Prize,
			SpinTime:     s.At(),
			PrizeAmount:  utils.FormatMoney(s.PrizeAmount, currencySymbol),
		})
	}
	return recent
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
