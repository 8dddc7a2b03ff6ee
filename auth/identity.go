package auth

import "github.com/gin-gonic/gin"

// Identity is what the gate forwards to handlers.
type Identity struct {
	UserID  uint
	Email   string
	IsOwner bool
}

const identityKey = "identity"

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// MustIdentity is for handlers mounted behind RequireAuth.
func MustIdentity(c *gin.Context) Identity {
	id, _ := CurrentIdentity(c)
	return id
}
