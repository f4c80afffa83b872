package domain

import (
	"slices"

	dErrors "veriport/pkg/domain-errors"
)

// Role is an account's coarse grained role.
type Role string

const (
	RoleVerifier   Role = "verifier"
	RoleHRStaff    Role = "hr_staff"
	RoleHRManager  Role = "hr_manager"
	RoleSuperAdmin Role = "super_admin"
)

// Permission gates individual admin operations.
type Permission string

const (
	PermViewAppeals   Permission = "view_appeals"
	PermManageAppeals Permission = "manage_appeals"
)

// DefaultPermissions is what a new account of each role is granted.
var DefaultPermissions = map[Role][]Permission{
	RoleVerifier:   nil,
	RoleHRStaff:    {PermViewAppeals},
	RoleHRManager:  {PermViewAppeals, PermManageAppeals},
	RoleSuperAdmin: {PermViewAppeals, PermManageAppeals},
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role "+s)
	}
	return r, nil
}

func (r Role) IsValid() bool {
	_, ok := DefaultPermissions[r]
	return ok
}

// IsAdmin reports whether the role belongs to HR staff rather than verifiers.
func (r Role) IsAdmin() bool {
	return r == RoleHRStaff || r == RoleHRManager || r == RoleSuperAdmin
}

func (p Permission) IsValid() bool {
	return p == PermViewAppeals || p == PermManageAppeals
}

// Can reports whether a holder of role with the granted permissions may
// perform p. Super admins hold every permission.
func Can(role Role, granted []Permission, p Permission) bool {
	if role == RoleSuperAdmin {
		return true
	}
	return slices.Contains(granted, p)
}
