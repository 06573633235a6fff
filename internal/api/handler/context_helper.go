package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. When the JWT
// middleware did not inject it, writes a 401 and returns ok=false; the
// caller should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// GetEmployeeID extracts employee_id from the Gin context. It may be
// empty for identity records without an employee profile.
func GetEmployeeID(c *gin.Context) string {
	v, exists := c.Get("employee_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsManager reports whether the caller holds a scheduling role.
func IsManager(c *gin.Context) bool {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return s == "admin" || s == "manager"
}
