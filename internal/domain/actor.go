package domain

// ActorRole identifies which kind of client is acting on a ride.
type ActorRole string

const (
	RoleRider  ActorRole = "rider"
	RoleDriver ActorRole = "driver"
	RoleAdmin  ActorRole = "admin"
)

// IsValid reports whether r is a known role.
func (r ActorRole) IsValid() bool {
	switch r {
	case RoleRider, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated identity behind a request. Authentication
// happens upstream; every service call receives the actor explicitly
// instead of reading ambient request state.
type Actor struct {
	ID   string
	Role ActorRole
}
