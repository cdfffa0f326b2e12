package models

import "spinwin/internal/utils"

// AccessScope is the set of routes a caller may read. The zero value is
// unrestricted. Values are immutable once built.
type AccessScope struct {
	route string
}

func Unrestricted() AccessScope {
	return AccessScope{}
}

// RestrictedTo binds a scope to one route. The name is canonicalized.
func RestrictedTo(route string) AccessScope {
	return AccessScope{route: utils.CanonicalKey(route)}
}

// ScopeForRoute maps a login's route to a scope; "all" and "" are
// unrestricted.
func ScopeForRoute(route string) AccessScope {
	canonical := utils.CanonicalKey(route)
	if canonical == "" || canonical == utils.AllRoutes {
		return Unrestricted()
	}
	return AccessScope{route: canonical}
}

func (s AccessScope) IsRestricted() bool {
	return s.route != ""
}

// Route is the bound route, or "" when unrestricted.
func (s AccessScope) Route() string {
	return s.route
}

// EffectiveRoute combines the scope with a caller-requested route filter.
// A restricted scope always wins, so a request can narrow but never widen.
// Requesting "all" is the same as requesting nothing.
func (s AccessScope) EffectiveRoute(requested string) string {
	if s.IsRestricted() {
		return s.route
	}
	route := utils.CanonicalKey(requested)
	if route == utils.AllRoutes {
		return ""
	}
	return route
}

// Label is the route name reported back to clients.
func (s AccessScope) Label() string {
	if s.IsRestricted() {
		return s.route
	}
	return utils.AllRoutes
}
