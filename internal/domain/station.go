package domain

import "time"

// Station is an EV charging station. Station management is owned by another
// part of the platform; this service reads stations for snapshots and
// operator scoping only.
type Station struct {
	ID          string
	StationName string
	StationCode string
	StationType string
	Status      string
	OperatorIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasOperator reports whether the given user operates this station.
func (s *Station) HasOperator(userID string) bool {
	for _, id := range s.OperatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}
