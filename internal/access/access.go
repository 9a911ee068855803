// Package access holds the ownership and membership predicates consulted
// before any project mutation. Pure lookups over entity snapshots; callers
// load the rows.
package access

import "github.com/taskup-dev/taskup/internal/models"

func IsOwner(userID uint, project models.Project) bool {
	return project.OwnerID == userID
}

// IsMember reports whether userID appears among the given live member rows.
// Soft-deleted members never reach here: the storage layer excludes them by
// default.
func IsMember(userID uint, members []models.ProjectMember) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func HasAccess(userID uint, project models.Project, members []models.ProjectMember) bool {
	return IsOwner(userID, project) || IsMember(userID, members)
}
