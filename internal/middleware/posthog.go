package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
	"github.com/posthog/posthog-go"
)

// PosthogMiddleware records an api_request event for every successful
// authenticated write. Reads are too chatty to be worth tracking.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || !isWrite(c.Request.Method) {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		posthogClient.Enqueue(userID, utils.EventAPIRequest, requestProperties(c))
	}
}

// PosthogEvent sends a named business event on behalf of the authenticated user.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	props := requestProperties(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}

func requestProperties(c *gin.Context) posthog.Properties {
	props := posthog.NewProperties().
		Set("route", c.FullPath()).
		Set("method", c.Request.Method).
		Set("status_code", c.Writer.Status())
	if requestID := c.Writer.Header().Get(RequestIDHeader); requestID != "" {
		props.Set("request_id", requestID)
	}
	if username, ok := UsernameFromContext(c.Request.Context()); ok {
		props.Set("username", username)
	}
	return props
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
