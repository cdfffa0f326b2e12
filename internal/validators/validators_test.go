package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinwin/internal/services"
	"spinwin/internal/utils"
)

func TestValidateAnalyticsQuery(t *testing.T) {
	valid := &AnalyticsQuery{RangeDays: 30, From: "2024-03-01T00:00:00Z", TZ: "Asia/Kolkata"}
	assert.Empty(t, ValidateAnalyticsQuery(valid))

	errs := ValidateAnalyticsQuery(&AnalyticsQuery{From: "yesterday", TZ: "Mars/Olympus"})
	require.Len(t, errs, 2)
	details := errs.Details()
	assert.Contains(t, details, "From")
	assert.Contains(t, details, "TZ")

	assert.Empty(t, ValidateAnalyticsQuery(&AnalyticsQuery{RangeDays: utils.MaxRangeDays}))
	tooLong := ValidateAnalyticsQuery(&AnalyticsQuery{RangeDays: utils.MaxRangeDays + 1})
	require.Len(t, tooLong, 1)
	assert.Equal(t, "range_days", tooLong[0].Tag)
	assert.Equal(t, "RangeDays must be at most 3650", tooLong[0].Message)
	assert.Empty(t, ValidateAnalyticsQuery(&AnalyticsQuery{RangeDays: -1}), "negative ranges are ignored later")
}

func TestAnalyticsQuery_Merge(t *testing.T) {
	query := AnalyticsQuery{RangeDays: 7, TZ: "UTC", RouteName: "shop-a"}
	body := AnalyticsQuery{RangeDays: 30, RouteName: "shop-b"}

	merged := query.Merge(body)

	assert.Equal(t, 30, merged.RangeDays)
	assert.Equal(t, "UTC", merged.TZ)
	assert.Equal(t, "shop-b", merged.RouteName)
}

func TestAnalyticsQuery_Params(t *testing.T) {
	params, err := AnalyticsQuery{From: "2024-03-01T00:00:00+05:30", TZ: "Asia/Kolkata", RouteName: " shop-a "}.Params()
	require.NoError(t, err)

	require.NotNil(t, params.From)
	assert.Equal(t, time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC), *params.From)
	assert.Nil(t, params.To)
	assert.Equal(t, "Asia/Kolkata", params.Location.String())
	assert.Equal(t, "shop-a", params.RouteName)

	defaults, err := AnalyticsQuery{}.Params()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, defaults.Location)

	_, err = AnalyticsQuery{To: "nope"}.Params()
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestValidateCustomerSearch(t *testing.T) {
	assert.Empty(t, ValidateCustomerSearch(&CustomerSearchQuery{Search: "asha"}))
	assert.Empty(t, ValidateCustomerSearch(&CustomerSearchQuery{Limit: utils.MaxCustomerSearchLimit}))

	errs := ValidateCustomerSearch(&CustomerSearchQuery{Limit: utils.MaxCustomerSearchLimit + 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "search_limit", errs[0].Tag)
	assert.Equal(t, "Limit must be between 1 and 1000", errs[0].Message)

	assert.Len(t, ValidateCustomerSearch(&CustomerSearchQuery{Limit: -5}), 1)
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin(&LoginRequest{Username: "admin"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Password is required", errs[0].Message)
}

func TestValidateTimezone(t *testing.T) {
	assert.Empty(t, ValidateTimezone(&TimezoneQuery{}))
	assert.Empty(t, ValidateTimezone(&TimezoneQuery{TZ: "America/Sao_Paulo"}))
	assert.NotEmpty(t, ValidateTimezone(&TimezoneQuery{TZ: "Nowhere/City"}))
}
