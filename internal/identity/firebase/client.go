// Package firebase реализует identity.Verifier поверх Identity Toolkit REST API
// Firebase Authentication.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/models"
)

// Client — клиент Identity Toolkit.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент. apiURL — базовый адрес, например
// https://identitytoolkit.googleapis.com/v1.
func NewClient(apiKey, apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp регистрирует учётную запись (accounts:signUp).
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	const op = "firebase.SignUp"
	resp, err := c.call(ctx, "accounts:signUp", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resp.LocalID, nil
}

// SignIn проверяет пароль (accounts:signInWithPassword).
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Credentials, error) {
	const op = "firebase.SignIn"
	resp, err := c.call(ctx, "accounts:signInWithPassword", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Credentials{
		UID:   resp.LocalID,
		Email: resp.Email,
		Token: resp.IDToken,
	}, nil
}

func (c *Client) call(ctx context.Context, method string, body any) (*accountResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", c.apiURL, method, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", identity.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, identity.NewError(identity.CodeUnknown)
		}
		return nil, identity.NewError(errorCode(errResp.Error.Message))
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", identity.ErrUnavailable, err)
	}
	return &account, nil
}

// errorCode отрезает пояснение вида "WEAK_PASSWORD : Password should be ...".
func errorCode(message string) string {
	code, _, _ := strings.Cut(message, " : ")
	return strings.TrimSpace(code)
}
