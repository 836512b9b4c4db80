package domain

import "github.com/google/uuid"

// Role is the authorization role carried in the access token
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Actor is the authenticated caller of a mutating operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// CanModify reports whether the actor may edit or delete content owned by authorID
func (a Actor) CanModify(authorID uuid.UUID) bool {
	return a.Role == RoleAdmin || (a.UserID != uuid.Nil && a.UserID == authorID)
}
