package middleware

import (
	"github.com/gin-gonic/gin"
)

// Role constants to avoid string typos
const (
	RoleSuperAdmin  = "superadmin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// AccessContext stores user access information for the current request
type AccessContext struct {
	UserID         uint
	GameUserID     int64
	RoleName       string
	PermissionType string // "full" or "readonly"
}

// CanWrite returns true if the user has write permissions
func (ac *AccessContext) CanWrite() bool {
	return ac.PermissionType == "full"
}

// CanRead returns true if the user has read permissions
func (ac *AccessContext) CanRead() bool {
	return ac.PermissionType == "full" || ac.PermissionType == "readonly"
}

// IsAdmin returns true for roles that manage events and users
func (ac *AccessContext) IsAdmin() bool {
	return ac.RoleName == RoleSuperAdmin || ac.RoleName == RoleOrganizer
}

// GetAccessContext extracts the access context set by the auth middleware
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		return AccessContext{}, false
	}
	ctx, ok := raw.(AccessContext)
	return ctx, ok
}
