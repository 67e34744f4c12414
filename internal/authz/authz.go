// Package authz defines the closed set of user roles and the pure
// permission predicates the handlers consult after authentication.
// Keeping the rules as plain functions of (role, relationship) lets
// them be tested without the HTTP layer.
package authz

// Role is one of the five account roles. The values match the strings
// stored in users.role and carried in the JWT "role" claim.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RolePlayer, RoleParent, RoleChild:
		return true
	}
	return false
}

// CanManageSessions reports whether the role may create, update or
// delete training sessions.
func CanManageSessions(r Role) bool {
	return r == RoleAdmin || r == RoleCoach
}

// CanBook reports whether the role may book a spot on a session.
// Parents book on behalf of their children through the same endpoint.
func CanBook(r Role) bool {
	return r == RolePlayer || r == RoleChild || r == RoleParent
}

// CanViewAllBookings reports whether the role may list every booking
// regardless of ownership.
func CanViewAllBookings(r Role) bool { return r == RoleAdmin }

// CanViewSessionBookings reports whether viewer may list the bookings
// of a session coached by coachID. Admins always may; a coach may for
// their own sessions.
func CanViewSessionBookings(r Role, viewerID uint64, coachID *uint64) bool {
	if r == RoleAdmin {
		return true
	}
	return r == RoleCoach && coachID != nil && *coachID == viewerID
}

// CanViewOwned reports whether viewer may read a resource (booking,
// bundle, membership) owned by ownerID. Admins see everything; other
// roles only their own records.
func CanViewOwned(r Role, viewerID, ownerID uint64) bool {
	if r == RoleAdmin {
		return true
	}
	return viewerID == ownerID
}

// CanManageDiscounts reports whether the role may create, update or
// delete discount codes. Applying a code is open to everyone.
func CanManageDiscounts(r Role) bool { return r == RoleAdmin }

// CanManageTeams reports whether the role may create teams or edit
// rosters.
func CanManageTeams(r Role) bool {
	return r == RoleAdmin || r == RoleCoach
}
