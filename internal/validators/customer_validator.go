package validators

type CustomerSearchQuery struct {
	Search string `form:"search" validate:"max=200"`
	Limit  int    `form:"limit" validate:"omitempty,search_limit"`
}

// TimezoneQuery is accepted by endpoints that bucket by calendar date.
type TimezoneQuery struct {
	TZ string `form:"tz" validate:"omitempty,iana_tz"`
}

func ValidateCustomerSearch(q *CustomerSearchQuery) ValidationErrors {
	return ValidateStruct(q)
}

func ValidateTimezone(q *TimezoneQuery) ValidationErrors {
	return ValidateStruct(q)
}
