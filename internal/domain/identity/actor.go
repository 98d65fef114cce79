package identity

import "github.com/google/uuid"

// Actor is the authenticated user performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// NewActor creates an actor
func NewActor(userID uuid.UUID, role Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// IsSalesperson reports whether the actor is restricted to their own records
func (a Actor) IsSalesperson() bool {
	return a.Role.IsSalesperson()
}

// CanAccessSalesperson reports whether the actor may read records owned by salesPersonID
func (a Actor) CanAccessSalesperson(salesPersonID uuid.UUID) bool {
	return !a.IsSalesperson() || a.UserID == salesPersonID
}
