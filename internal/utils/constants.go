package utils

// Application Constants
const (
	AppName    = "SpinWin"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Route value on a login record that grants access to every route.
	AllRoutes = "all"

	// Limits
	DefaultCustomerSearchLimit = 50
	MaxCustomerSearchLimit     = 1000
	MaxCustomerDetailSpins     = 100
	MaxSpinResultItems         = 500
	MaxRangeDays               = 3650
	TopReturningLimit          = 10
	RecentSpinsLimit           = 10
	DailyRollupLimit           = 30
	WeeklyRollupLimit          = 26
	MonthlyRollupLimit         = 12

	// Customer type thresholds (visits)
	LoyalCustomerVisits     = 5
	ReturningCustomerVisits = 2

	// Prize type when a spin does not carry one
	DefaultPrizeType = "other"
)

// Customer types
const (
	CustomerTypeNew       = "New"
	CustomerTypeReturning = "Returning"
	CustomerTypeLoyal     = "Loyal"
)

// Device classes
const (
	DeviceAndroid = "Android"
	DeviceIOS     = "iOS"
	DeviceDesktop = "Desktop"
	DeviceOther   = "Other"
)

const StatusError = "error"

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrTooManyRequests  = "too many requests"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheLoginAttemptsPrefix = "login_attempts:"
)
