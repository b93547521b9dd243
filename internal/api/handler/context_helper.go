package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/pkg/response"
)

// contextString extracts a required string the auth middleware injected.
// Writes a 401 and returns ok=false when missing; callers return directly.
func contextString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
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

// MustGetUserID extracts the identity user id from the request context.
func MustGetUserID(c *gin.Context) (string, bool) {
	return contextString(c, "user_id")
}

// MustGetEmployeeID extracts the employee id from the request context.
func MustGetEmployeeID(c *gin.Context) (string, bool) {
	return contextString(c, "employee_id")
}

// MustGetRole extracts the role from the request context.
func MustGetRole(c *gin.Context) (string, bool) {
	return contextString(c, "role")
}

// queryDate parses an optional "YYYY-MM-DD" query parameter, defaulting to
// today's local calendar date. Writes a 400 on malformed input.
func queryDate(c *gin.Context, name string) (model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return model.Today(), true
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		response.BadRequest(c, 10001, "invalid date, expected YYYY-MM-DD")
		return model.Date{}, false
	}
	return date, true
}

// requiredQueryDate parses a mandatory "YYYY-MM-DD" query parameter.
func requiredQueryDate(c *gin.Context, name string) (model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		response.BadRequest(c, 10001, name+" is required")
		return model.Date{}, false
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		response.BadRequest(c, 10001, "invalid "+name+", expected YYYY-MM-DD")
		return model.Date{}, false
	}
	return date, true
}
