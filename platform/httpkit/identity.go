// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller. It abstracts identity
// extraction from the web framework so services never touch Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// ChurchID returns the tenant the user belongs to, nil for
	// platform-level accounts.
	ChurchID() *uuid.UUID
	// Roles returns the user's assigned roles.
	Roles() []string
	// HasRole checks whether the user holds a specific role.
	HasRole(role string) bool
	// IsAuthenticated reports whether the caller is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	churchID      *uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID    { return i.userID }
func (i *identity) ChurchID() *uuid.UUID { return i.churchID }
func (i *identity) Roles() []string      { return i.roles }

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context. Returns an
// unauthenticated identity when auth middleware did not run.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if roles, ok := c.Get(ContextRolesKey); ok {
		roleList, _ = roles.([]string)
	}

	var churchID *uuid.UUID
	if raw, ok := c.Get(ContextChurchIDKey); ok {
		if cid, ok := raw.(uuid.UUID); ok {
			churchID = &cid
		}
	}

	return &identity{
		userID:        uid,
		churchID:      churchID,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity or aborts with 401.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}

// MustGetChurchID extracts the tenant ID or aborts with 403. The search
// engine and all tenant-scoped repositories receive this value; it never
// comes from request parameters.
func MustGetChurchID(c *gin.Context) (uuid.UUID, bool) {
	id := MustGetIdentity(c)
	if id == nil {
		return uuid.Nil, false
	}
	churchID := id.ChurchID()
	if churchID == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "church membership required"})
		return uuid.Nil, false
	}
	return *churchID, true
}
