package auth

import "github.com/gin-gonic/gin"

const identityKey = "identity"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	id, _ := c.Get(identityKey)
	ident, _ := id.(Identity)
	return ident.UserID
}

// GetIdentity returns the string recorded as the booker of a reservation.
func GetIdentity(c *gin.Context) string {
	id, _ := c.Get(identityKey)
	ident, _ := id.(Identity)
	return ident.Booker()
}
