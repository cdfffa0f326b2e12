package validators

import (
	"fmt"
	"strings"

	"spinwin/internal/services"
	"spinwin/internal/utils"
)

// AnalyticsQuery carries the analytics filters from the query string or a
// JSON body.
type AnalyticsQuery struct {
	RangeDays int    `form:"rangeDays" json:"rangeDays" validate:"omitempty,range_days"`
	From      string `form:"from" json:"from" validate:"omitempty,iso_instant"`
	To        string `form:"to" json:"to" validate:"omitempty,iso_instant"`
	TZ        string `form:"tz" json:"tz" validate:"omitempty,iana_tz"`
	RouteName string `form:"routeName" json:"routeName" validate:"omitempty,max=200"`
}

// Merge overlays the non-empty fields of body onto q.
func (q AnalyticsQuery) Merge(body AnalyticsQuery) AnalyticsQuery {
	if body.RangeDays != 0 {
		q.RangeDays = body.RangeDays
	}
	if body.From != "" {
		q.From = body.From
	}
	if body.To != "" {
		q.To = body.To
	}
	if body.TZ != "" {
		q.TZ = body.TZ
	}
	if body.RouteName != "" {
		q.RouteName = body.RouteName
	}
	return q
}

func ValidateAnalyticsQuery(q *AnalyticsQuery) ValidationErrors {
	return ValidateStruct(q)
}

// Params converts a validated query into engine parameters.
func (q AnalyticsQuery) Params() (services.AnalyticsParams, error) {
	params := services.AnalyticsParams{
		RangeDays: q.RangeDays,
		RouteName: strings.TrimSpace(q.RouteName),
	}

	loc, err := utils.LoadLocation(q.TZ)
	if err != nil {
		return params, fmt.Errorf("%w: tz: %v", services.ErrInvalidInput, err)
	}
	params.Location = loc

	if q.From != "" {
		from, err := utils.ParseInstant(q.From)
		if err != nil {
			return params, fmt.Errorf("%w: from: %v", services.ErrInvalidInput, err)
		}
		params.From = &from
	}
	if q.To != "" {
		to, err := utils.ParseInstant(q.To)
		if err != nil {
			return params, fmt.Errorf("%w: to: %v", services.ErrInvalidInput, err)
		}
		params.To = &to
	}

	return params, nil
}
