package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-wellness/internal/platform/httpclient"
	"pet-wellness/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth gateway not configured")
	ErrUnauthorized  = errors.New("auth gateway unauthorized")
	ErrUpstream      = errors.New("auth gateway upstream error")
)

// Config del cliente contra el servicio de auth hospedado.
// BaseURL y APIKey normalmente vienen del config/env del servicio.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// userResponse es el shape del endpoint /auth/v1/user del backend hospedado.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Aud   string `json:"aud"`
}

// VerifyToken valida el access token del usuario contra el servicio de auth
// y devuelve claims normalizados.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, he.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("auth gateway response missing user id")
	}

	return auth.Claims{
		UserID:   out.ID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.Aud),
	}, nil
}
