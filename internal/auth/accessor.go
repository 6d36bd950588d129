package auth

import "github.com/gin-gonic/gin"

const AUTH_OBJECT_KEY = "auth_data"

func SetUsername(c *gin.Context, username string) {
	c.Set(AUTH_OBJECT_KEY, username)
}

func GetUsername(c *gin.Context) string {
	if value, ok := c.Get(AUTH_OBJECT_KEY); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}

	return ""
}

func IsLoggedIn(c *gin.Context) bool {
	return GetUsername(c) != ""
}
