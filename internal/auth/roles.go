package auth

import "github.com/eventops/api/internal/enum"

// EditorRoles may change an event's serviceware. Everyone else signed in
// gets a read-only view.
var EditorRoles = []string{enum.UserRoleAdmin, enum.UserRoleCoordinator}

// CanEditServiceware reports whether role is one of EditorRoles.
func CanEditServiceware(role string) bool {
	for _, r := range EditorRoles {
		if r == role {
			return true
		}
	}
	return false
}
