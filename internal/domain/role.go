package domain

// UserRole is the role claim carried by authenticated principals. Credential
// management and token issuance live in the identity service.
type UserRole string

const (
	// RoleBackoffice has full administrative access.
	RoleBackoffice UserRole = "Backoffice"

	// RoleStationOperator manages the operations of assigned stations.
	RoleStationOperator UserRole = "StationOperator"

	// RoleEVOwner is a mobile EV owner acting on their own bookings.
	RoleEVOwner UserRole = "EVOwner"
)
