// Package auth talks to the hosted auth provider. Credential storage and
// session mechanics live entirely on the provider side; this client only
// delegates signups and passes tenant linkage through as user metadata.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/flukeworks/fluke/config"
)

// User is the provider's identity record for a created user
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
}

// ProviderError is a non-2xx response from the auth provider
type ProviderError struct {
	Status  int    `json:"status"`
	Msg     string `json:"msg"`
	ErrDesc string `json:"error_description"`
}

func (e *ProviderError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.ErrDesc != "" {
		return e.ErrDesc
	}
	return http.StatusText(e.Status)
}

type Client struct {
	cfg config.AuthConfig
}

func NewClient(cfg config.AuthConfig) *Client {
	return &Client{cfg: cfg}
}

type signupRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Signup creates a user on the auth provider. metadata travels as the
// user's signup metadata (tenant linkage is not persisted locally).
// A *ProviderError is returned for provider-side rejections, any other
// error means the provider was unreachable.
func (c *Client) Signup(ctx context.Context, email, password string, metadata map[string]interface{}) (*User, error) {
	body, err := json.Marshal(signupRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		return nil, err
	}

	raw, status, err := c.post(ctx, "/signup", body)
	if err != nil {
		return nil, errors.Wrap(err, "auth provider request failed")
	}

	if status >= http.StatusBadRequest {
		perr := &ProviderError{Status: status}
		_ = json.Unmarshal(raw, perr)
		perr.Status = status
		return nil, perr
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Wrap(err, "auth provider returned malformed response")
	}
	return &user, nil
}
