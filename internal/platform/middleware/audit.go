package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AuditEntry records one access to patient data.
type AuditEntry struct {
	Action     string // read, search, create, update, delete
	PatientID  string
	Route      string
	Method     string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// auditedRoutes lists the route templates that expose patient data.
var auditedRoutes = map[string]bool{
	"/view":        true,
	"/sort":        true,
	"/patient/:id": true,
	"/create":      true,
	"/edit/:id":    true,
	"/delete/:id":  true,
}

// AuditSink receives every audit entry after it has been logged.
type AuditSink func(AuditEntry)

// Audit logs a structured patient_audit event for every request that reads
// or changes patient records and hands the entry to each sink. Other routes
// pass through untouched.
func Audit(logger zerolog.Logger, sinks ...AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if !auditedRoutes[route] {
				return next(c)
			}

			err := next(c)

			req := c.Request()
			entry := AuditEntry{
				Action:     auditAction(req.Method, route),
				PatientID:  c.Param("id"),
				Route:      route,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
				Timestamp:  time.Now().UTC(),
			}
			if he, ok := err.(*echo.HTTPError); ok {
				entry.StatusCode = he.Code
			}
			entry.RequestID, _ = c.Get(RequestIDKey).(string)

			logger.Info().
				Str("type", "patient_audit").
				Str("request_id", entry.RequestID).
				Str("action", entry.Action).
				Str("patient_id", entry.PatientID).
				Str("route", entry.Route).
				Str("method", entry.Method).
				Str("remote_ip", entry.IPAddress).
				Str("user_agent", entry.UserAgent).
				Int("status", entry.StatusCode).
				Time("at", entry.Timestamp).
				Msg("patient_access")

			for _, sink := range sinks {
				sink(entry)
			}
			return err
		}
	}
}

func auditAction(method, route string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	if route == "/patient/:id" {
		return "read"
	}
	return "search"
}
