package domain

import "mesaYaDash/internal/shared/normalization"

// dependents lists groups whose data is derived from another group: seating a
// reservation or a waitlist party changes the floor.
var dependents = map[string][]string{
	normalization.EntityReservations: {normalization.EntityTables},
	normalization.EntityWaitlist:     {normalization.EntityTables},
}

// AffectedGroups returns the cache groups a backend event on entity makes
// stale. Every change lands in the activity log. Unknown entities yield nil.
func AffectedGroups(entity string) []string {
	group := normalization.NormalizeEntity(entity)
	if !normalization.IsValidEntity(group) {
		return nil
	}
	groups := []string{group}
	groups = append(groups, dependents[group]...)
	if group != normalization.EntityActivity && group != normalization.EntityHealth {
		groups = append(groups, normalization.EntityActivity)
	}
	return groups
}
