package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	CtxAdminAddress = "admin_address"
	CtxIsAdmin      = "is_admin"
)

// WithAdminQuery reads the adminAddress query parameter and records whether
// it is on the allow-list. It never rejects a request.
func WithAdminQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.Query("adminAddress")
		c.Set(CtxAdminAddress, addr)
		c.Set(CtxIsAdmin, IsAdmin(addr))
		c.Next()
	}
}

// RequestIsAdmin reports the flag set by WithAdminQuery.
func RequestIsAdmin(c *gin.Context) bool {
	return c.GetBool(CtxIsAdmin)
}
