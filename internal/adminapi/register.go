package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flukeworks/fluke/internal/auth"
	"github.com/flukeworks/fluke/internal/webserver"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
	TenantId string `json:"tenant_id" validate:"required"`
}

func registerRegisterRoutes() {
	webserver.ApiPOST("/auth/register", registerUser)
}

// registerUser delegates credential creation to the hosted auth provider.
// Tenant linkage travels as signup metadata only; no local user row is
// written.
func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email, password, and tenant_id are required", nil)
	}

	metadata := map[string]interface{}{
		"tenant_id": payload.TenantId,
	}
	if name := strings.TrimSpace(payload.FullName); name != "" {
		metadata["full_name"] = name
	}

	user, err := authClient.Signup(c.Request().Context(), payload.Email, payload.Password, metadata)
	if err != nil {
		var perr *auth.ProviderError
		if errors.As(err, &perr) {
			// user-correctable rejection, surface the provider message
			return fail(c, http.StatusBadRequest, "SIGNUP_REJECTED", perr.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "AUTH_PROVIDER_ERROR", "Failed to create user", err.Error())
	}

	return created(c, map[string]interface{}{
		"user":    user,
		"message": "User created successfully. Please check your email to verify your account.",
	})
}
