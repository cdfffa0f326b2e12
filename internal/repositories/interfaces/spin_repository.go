package interfaces

import (
	"context"
	"errors"
	"sort"
	"time"

	"spinwin/internal/models"
)

var ErrNotFound = errors.New("not found")

// SpinFilter narrows the eligible spin set. Route is canonical; empty means
// every registered route. From and To are inclusive. Visitor, when set, keeps
// only spins with that canonical visitor key. Newest > 0 keeps only the
// newest N eligible spins.
type SpinFilter struct {
	Route   string
	From    *time.Time
	To      *time.Time
	Visitor string
	Newest  int
}

// Contains reports whether t falls inside the window.
func (f SpinFilter) Contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

type SpinRepository interface {
	// FindEligible returns normalized spins whose timestamp resolves, which
	// fall inside the filter, and whose route is present in the login
	// registry. Results are ordered by timestamp ascending, oldest first,
	// also when Newest caps them.
	FindEligible(ctx context.Context, filter SpinFilter) ([]*models.Spin, error)
}

// Admits applies the route and window checks to a normalized spin. Spins
// without a resolvable timestamp or route are never admitted.
func (f SpinFilter) Admits(s *models.Spin) bool {
	if s.Timestamp == nil || s.Route == "" {
		return false
	}
	if f.Route != "" && s.Route != f.Route {
		return false
	}
	if f.Visitor != "" && s.VisitorKey() != f.Visitor {
		return false
	}
	return f.Contains(*s.Timestamp)
}

// KeepNewest trims a chronologically sorted slice to the filter's Newest cap.
func (f SpinFilter) KeepNewest(spins []*models.Spin) []*models.Spin {
	if f.Newest > 0 && len(spins) > f.Newest {
		return spins[len(spins)-f.Newest:]
	}
	return spins
}

// SortChronologically orders spins by timestamp, then by id.
func SortChronologically(spins []*models.Spin) {
	sort.SliceStable(spins, func(i, j int) bool {
		a, b := spins[i].At(), spins[j].At()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return spins[i].ID < spins[j].ID
	})
}
