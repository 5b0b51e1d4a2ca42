// Package authz is the authorization decision engine: a pure mapping from
// (role, action) to an allow/deny decision. It performs no I/O, holds no
// state, and is safe for concurrent use from any number of requests.
package authz

import "github.com/resourcehub/resource-api/internal/core/domain"

// Action identifies an operation on the resource collection.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// ReasonInsufficientRole is the deny reason carried for observability.
// Callers surface it to clients only as a generic "forbidden".
const ReasonInsufficientRole = "insufficient_role"

// Decision is one of the two terminal outcomes of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// table enumerates every role × action combination. Read actions are open
// to all authenticated roles; create and delete are admin-only; update is
// role-based for admin and manager regardless of who owns the resource.
var table = map[Action]map[domain.Role]bool{
	ActionList:     {domain.RoleAdmin: true, domain.RoleManager: true, domain.RoleUser: true},
	ActionRetrieve: {domain.RoleAdmin: true, domain.RoleManager: true, domain.RoleUser: true},
	ActionCreate:   {domain.RoleAdmin: true},
	ActionUpdate:   {domain.RoleAdmin: true, domain.RoleManager: true},
	ActionDelete:   {domain.RoleAdmin: true},
}

// Authorize evaluates the decision table. Unknown roles and unknown actions
// deny. The caller must have authenticated the identity first; a missing
// identity is an authentication failure, not an authorization one.
func Authorize(role domain.Role, action Action) Decision {
	if table[action][role] {
		return Decision{Allowed: true}
	}
	return Decision{Reason: ReasonInsufficientRole}
}

// IsOwnerOrAdmin reports whether the caller is an admin or the identity that
// created the resource. It is part of the permission model but attached to
// no route: update semantics are role-based, not ownership-based.
func IsOwnerOrAdmin(role domain.Role, ownerID, callerID string) bool {
	if role == domain.RoleAdmin {
		return true
	}
	return ownerID != "" && ownerID == callerID
}
