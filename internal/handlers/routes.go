package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the login and throttle admin routes.
func RegisterRoutes(api huma.API, auth *AuthHandler, throttles *ThrottleHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in",
		Description: "Verifies credentials. Failed attempts count against the client's throttle window; a successful login clears it.",
		Tags:        []string{"Auth"},
	}, auth.Login)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/throttles/{identity}",
		Summary:     "Get throttle status",
		Description: "Reports the attempt count and remaining window for an identity.",
		Tags:        []string{"Throttles"},
	}, throttles.Status)

	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/throttles/{identity}",
		Summary:       "Reset throttle",
		Description:   "Clears the attempt count for an identity, unblocking it immediately.",
		Tags:          []string{"Throttles"},
		DefaultStatus: http.StatusNoContent,
	}, throttles.Reset)
}
