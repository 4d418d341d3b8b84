package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/markerrors"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is where the identity middleware stores the authenticated user.
const UserIDKey = "user_id"

// CurrentUser returns the authenticated principal set by the identity
// middleware.
func CurrentUser(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps a domain error to an HTTP status code and message by
// its kind, so callers can branch on conflicts versus bad input.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, markerrors.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, markerrors.ErrUnauthorized):
		return http.StatusForbidden, "not allowed for this user"
	case errors.Is(err, markerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, markerrors.ErrConflict):
		return http.StatusConflict, "request conflicts with current state"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError sends the mapped error response and logs it.
func HandleServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["error"] = err.Error()
	utils.Warn(handlerName+": "+message, ctx)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
