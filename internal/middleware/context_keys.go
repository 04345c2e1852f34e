package middleware

import "github.com/gin-gonic/gin"

// userEmailKey is the key used to store the authenticated operator's email.
const userEmailKey = contextKey("userEmail")

// GetUserEmailFromContext retrieves the authenticated operator email from the
// Gin context. It returns the email and a boolean indicating if it was found.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userEmailKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(userEmailKey)
		if ctxVal != nil {
			email, ok := ctxVal.(string)
			return email, ok
		}
		return "", false
	}

	email, ok := val.(string)
	if !ok {
		return "", false
	}
	return email, true
}
