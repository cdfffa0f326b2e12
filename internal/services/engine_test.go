package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinwin/internal/models"
)

func TestClassifyDevice(t *testing.T) {
	assert.Equal(t, "Android", ClassifyDevice("Mozilla/5.0 (Linux; Android 13; Pixel 7)"))
	assert.Equal(t, "iOS", ClassifyDevice("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.Equal(t, "Desktop", ClassifyDevice("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"))
	assert.Equal(t, "Desktop", ClassifyDevice("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
	assert.Equal(t, "Other", ClassifyDevice(""))
}

func TestDeviceBreakdown_OnePerClass(t *testing.T) {
	spins := []*models.Spin{
		{UserAgent: "Android"},
		{UserAgent: "iPhone"},
		{UserAgent: "Macintosh"},
		{UserAgent: ""},
	}

	devices := deviceBreakdown(spins)

	require.Len(t, devices, 4)
	for _, d := range devices {
		assert.Equal(t, 1, d.Count, d.Device)
	}
	assert.Equal(t, []string{"Android", "Desktop", "Other", "iOS"},
		[]string{devices[0].Device, devices[1].Device, devices[2].Device, devices[3].Device})
}

func TestResultDistribution(t *testing.T) {
	spins := []*models.Spin{
		{Result: "Free coffee", PrizeAmount: 50},
		{Result: "Free coffee", PrizeAmount: 25},
		{Result: "10% off", PrizeAmount: 10},
		{Result: ""},
	}

	buckets := resultDistribution(spins)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Free coffee", buckets[0].Result)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 75.0, buckets[0].TotalPrizeAmount)
	assert.Equal(t, 37.5, buckets[0].AvgPrizeAmount)
	assert.Equal(t, 38.0, buckets[0].PrizeAmount, "half rounds away from zero")
	assert.Equal(t, "", buckets[1].Result, "ties break by label")

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(spins), total)
}

func TestDwellTime(t *testing.T) {
	in := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out1 := in.Add(60 * time.Second)
	out2 := in.Add(100 * time.Second)
	spins := []*models.Spin{
		{InTime: &in, OutTime: &out1},
		{InTime: &in, OutTime: &out2},
		{InTime: &in},
	}

	stats := dwellTime(spins)

	assert.Equal(t, 2, stats.Samples)
	assert.Equal(t, 80.0, stats.AvgDwellSecs)
	assert.Equal(t, 100.0, stats.MaxDwellSecs)
	assert.Equal(t, 60.0, stats.MinDwellSecs)
	assert.Equal(t, models.DwellTime{}, dwellTime(nil))
}

func TestVisitorAggregates(t *testing.T) {
	at := func(h int) *time.Time {
		ts := time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC)
		return &ts
	}
	spins := []*models.Spin{
		{Name: "Asha", Surname: "Rao", Timestamp: at(1)},
		{SessionID: "s-9", Timestamp: at(2)},
		{Name: "asha", Surname: "rao", Timestamp: at(3)},
		{SessionID: "s-9", Timestamp: at(4)},
		{IPAddress: "10.0.0.1", Timestamp: at(5)},
		{Timestamp: at(6)},
	}

	stats := visitorAggregates(spins)

	assert.Equal(t, 3, stats.unique)
	assert.Equal(t, 2, stats.returning)
	require.Len(t, stats.topReturning, 2)
	assert.Equal(t, "", stats.topReturning[0].FullName, "s-9 visited most recently")
	assert.Equal(t, "asha rao", stats.topReturning[1].FullName)
	assert.Equal(t, 2, stats.topReturning[1].Visits)
}

func TestFinancialRollups_CapKeepsMostRecent(t *testing.T) {
	var spins []*models.Spin
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		ts := start.AddDate(0, 0, i)
		spins = append(spins, &models.Spin{Timestamp: &ts, AmountSpent: 10, Discount: 15})
	}

	daily := dailyFinancial(spins, time.UTC)

	require.Len(t, daily, 30)
	assert.Equal(t, "2024-01-11", daily[0].Day)
	assert.Equal(t, "2024-02-09", daily[29].Day)
	assert.Equal(t, 0.0, daily[0].Income, "income never goes negative")

	weekly := weeklyFinancial(spins, time.UTC)
	assert.Equal(t, "2024-W01", weekly[0].Week)

	monthly := monthlyFinancial(spins, time.UTC)
	require.Len(t, monthly, 2)
	assert.Equal(t, 31, monthly[0].Spins)
}

func TestFinancialTotals_IncomeInvariant(t *testing.T) {
	spins := []*models.Spin{
		{AmountSpent: 100.5, Discount: 20.125},
		{AmountSpent: 0.25, Discount: 0.5},
	}

	totals := financialTotals(spins)

	assert.Equal(t, 100.75, totals.Sales)
	assert.Equal(t, 20.63, totals.Discount)
	assert.Equal(t, 80.12, totals.Income)
}

func TestTodayRollup_TimezoneAndRecentSpins(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 2024-03-15 20:00 UTC is already the 16th in Kolkata.
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	early := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	spins := []*models.Spin{
		{Name: "Early", Timestamp: &early, AmountSpent: 10},
		{Name: "Late", Timestamp: &late, AmountSpent: 40, PrizeAmount: 12.5, Prize: "Mug"},
	}

	utc := todayRollup(spins, now, time.UTC, "₹")
	assert.Equal(t, 2, utc.Spins)
	assert.Equal(t, 50.0, utc.Sales)
	require.Len(t, utc.RecentSpins, 2)
	assert.Equal(t, "Late", utc.RecentSpins[0].CustomerName)
	assert.Equal(t, "₹12.5", utc.RecentSpins[0].PrizeAmount)

	local := todayRollup(spins, now, kolkata, "₹")
	assert.Equal(t, 1, local.Spins)
	assert.Equal(t, 1, local.Customers)
	assert.Equal(t, 12.5, local.PrizeAmount)
}

func TestBaseSet_ScopeCannotWiden(t *testing.T) {
	day := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	engine := newTestEngine(newTestStore(
		spinDoc("shop-a", day, nil),
		spinDoc("shop-b", day, nil),
		spinDoc("shop-b", day, nil),
	))

	spins, err := engine.BaseSet(context.Background(), models.RestrictedTo("shop-a"), "shop-b", Window{})
	require.NoError(t, err)
	require.Len(t, spins, 1)
	assert.Equal(t, "shop-a", spins[0].Route)

	spins, err = engine.BaseSet(context.Background(), models.Unrestricted(), "SHOP-B", Window{})
	require.NoError(t, err)
	assert.Len(t, spins, 2)
}
