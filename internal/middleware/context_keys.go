package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// ActingUser sets the acting user ID on the context. Callers identify
// themselves with the X-User-ID header; write operations fall back to
// "system" when it is absent.
func ActingUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "system"
		}
		c.Set(string(userIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
