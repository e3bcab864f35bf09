package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
)

func CheckAdmin(c *gin.Context) {
	if !c.GetBool("admin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
}

// CheckUserAccess keeps callers on their own /users/:user_id routes. Admins
// may act on any user.
func CheckUserAccess(c *gin.Context) {
	currentUser, ok := c.MustGet("currentUser").(models.AuthUser)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if c.Param("user_id") != currentUser.User_ID && !currentUser.Admin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You can only access your own data"})
		return
	}
}
