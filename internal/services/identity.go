package services

import "spinwin/internal/models"

// visitorGroups buckets spins by visitor key, dropping the empty key. Each
// bucket keeps the input order.
func visitorGroups(spins []*models.Spin) map[string][]*models.Spin {
	groups := make(map[string][]*models.Spin)
	for _, s := range spins {
		key := s.VisitorKey()
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], s)
	}
	return groups
}

func uniqueVisitors(spins []*models.Spin) int {
	return len(visitorGroups(spins))
}
