package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinwin/internal/models"
	"spinwin/internal/utils"
	"spinwin/pkg/logger"
)

func TestSummary_MoneyScenario(t *testing.T) {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, map[string]interface{}{"amountSpent": "₹1,200", "name": "A"}),
		spinDoc("shop-a", day.Add(time.Hour), map[string]interface{}{"amountSpent": "800", "name": "B"}),
		spinDoc("shop-a", day.Add(2*time.Hour), map[string]interface{}{"amountSpent": "₹0", "name": "C"}),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())

	summary, err := svc.Summary(context.Background(), models.RestrictedTo("shop-a"), AnalyticsParams{Location: time.UTC})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalSpins)
	assert.Equal(t, 2000.0, summary.AmountStats.TotalAmountSpent)
	assert.Equal(t, 666.67, summary.AmountStats.AvgAmountSpent)
	require.Len(t, summary.DailyFinancial, 1)
	assert.Equal(t, 3, summary.DailyFinancial[0].Spins)
	assert.Equal(t, 2000.0, summary.DailyFinancial[0].Sales)
	assert.Equal(t, 3, summary.UniqueVisitors)
	assert.Empty(t, summary.ByRoute, "restricted scope has no route breakdown")
}

func TestSummary_ExcludesUnresolvableAndOrphaned(t *testing.T) {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, nil),
		map[string]interface{}{"routeName": "shop-a", "amountSpent": "100"},
		spinDoc("shop-z", day, nil),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())

	summary, err := svc.Summary(context.Background(), models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalSpins)
	assert.Equal(t, []models.RouteCount{{RouteName: "shop-a", Count: 1}}, summary.ByRoute)
}

func TestSummary_RouteBreakdownOnlyWhenUnfiltered(t *testing.T) {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, nil),
		spinDoc("shop-b", day, nil),
		spinDoc("Shop-B ", day, nil),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())
	ctx := context.Background()

	all, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)
	assert.Equal(t, []models.RouteCount{{RouteName: "shop-b", Count: 2}, {RouteName: "shop-a", Count: 1}}, all.ByRoute)

	filtered, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{RouteName: "shop-b"})
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.TotalSpins)
	assert.Empty(t, filtered.ByRoute)
}

func TestSummary_AllRouteMeansUnfiltered(t *testing.T) {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, nil),
		spinDoc("shop-b", day, nil),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())
	ctx := context.Background()

	unfiltered, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)

	for _, route := range []string{"all", " ALL "} {
		summary, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{RouteName: route})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalSpins, route)
		assert.Equal(t, unfiltered.ByRoute, summary.ByRoute, route)
		assert.Len(t, summary.ByRoute, 2, route)
	}

	scoped, err := svc.Summary(ctx, models.RestrictedTo("shop-a"), AnalyticsParams{RouteName: "all"})
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalSpins)
	assert.Empty(t, scoped.ByRoute)
}

func TestSummary_EmptyBaseSet(t *testing.T) {
	svc := NewAnalyticsService(newTestEngine(newTestStore()), logger.NewNop())

	summary, err := svc.Summary(context.Background(), models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)

	body, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "null")
	assert.Equal(t, 0, summary.TotalSpins)
	assert.Equal(t, models.AmountStats{}, summary.AmountStats)
}

func TestSummary_Idempotent(t *testing.T) {
	day := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, map[string]interface{}{"sessionId": "x", "result": "Mug", "userAgent": "Android"}),
		spinDoc("shop-b", day, map[string]interface{}{"sessionId": "x", "winner": "Pen", "userAgent": "iPhone"}),
		spinDoc("shop-b", day.Add(time.Minute), map[string]interface{}{"ipAddress": "1.1.1.1", "amountSpent": "12.5"}),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())

	first, err := svc.Summary(context.Background(), models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), models.Unrestricted(), AnalyticsParams{})
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}

func TestSummary_Window(t *testing.T) {
	store := newTestStore(
		spinDoc("shop-a", fixedNow.Add(-48*time.Hour), nil),
		spinDoc("shop-a", fixedNow.Add(-2*time.Hour), nil),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())
	ctx := context.Background()

	recent, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{RangeDays: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, recent.TotalSpins)

	from := fixedNow.Add(-72 * time.Hour)
	widened, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{RangeDays: 1, From: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, widened.TotalSpins, "explicit from replaces the rangeDays bound")

	ignored, err := svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{RangeDays: -3})
	require.NoError(t, err)
	assert.Equal(t, 2, ignored.TotalSpins)

	to := fixedNow.Add(-96 * time.Hour)
	_, err = svc.Summary(ctx, models.Unrestricted(), AnalyticsParams{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestSpinResults_NewestFirst(t *testing.T) {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newTestStore(
		spinDoc("shop-a", day, map[string]interface{}{"_id": "old"}),
		spinDoc("shop-a", day.Add(time.Hour), map[string]interface{}{"_id": "new"}),
		spinDoc("shop-b", day.Add(2*time.Hour), map[string]interface{}{"_id": "other"}),
	)
	svc := NewAnalyticsService(newTestEngine(store), logger.NewNop())

	resp, err := svc.SpinResults(context.Background(), models.RestrictedTo("shop-a"), "")
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "new", resp.Items[0].ID)
	assert.Equal(t, "old", resp.Items[1].ID)
}

func TestSpinResults_CappedToNewest(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]map[string]interface{}, 0, utils.MaxSpinResultItems+20)
	for i := 0; i < utils.MaxSpinResultItems+20; i++ {
		docs = append(docs, spinDoc("shop-a", start.Add(time.Duration(i)*time.Minute), nil))
	}
	svc := NewAnalyticsService(newTestEngine(newTestStore(docs...)), logger.NewNop())

	resp, err := svc.SpinResults(context.Background(), models.Unrestricted(), "")
	require.NoError(t, err)

	require.Len(t, resp.Items, utils.MaxSpinResultItems)
	newest := start.Add(time.Duration(utils.MaxSpinResultItems+19) * time.Minute)
	assert.True(t, newest.Equal(resp.Items[0].Timestamp))
	oldestKept := start.Add(20 * time.Minute)
	assert.True(t, oldestKept.Equal(resp.Items[len(resp.Items)-1].Timestamp))
}
