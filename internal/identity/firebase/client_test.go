package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/eventos/internal/identity"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL+"/v1/", time.Second)
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 400, "message": message},
	})
}

func TestClient_SignIn_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body passwordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body.Email)
		assert.Equal(t, "secret1", body.Password)
		assert.True(t, body.ReturnSecureToken)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"localId": "uid-1",
			"email":   "ana@example.com",
			"idToken": "id-token",
		})
	})

	creds, err := client.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", creds.UID)
	assert.Equal(t, "ana@example.com", creds.Email)
	assert.Equal(t, "id-token", creds.Token)
}

func TestClient_SignIn_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantCode string
	}{
		{name: "invalid credentials", message: "INVALID_LOGIN_CREDENTIALS", wantCode: identity.CodeInvalidCredentials},
		{name: "email not found", message: "EMAIL_NOT_FOUND", wantCode: identity.CodeEmailNotFound},
		{name: "user disabled", message: "USER_DISABLED", wantCode: identity.CodeUserDisabled},
		{
			name:     "too many attempts with detail",
			message:  "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled",
			wantCode: identity.CodeTooManyAttempts,
		},
		{name: "empty message", message: "", wantCode: identity.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, tt.message)
			})

			creds, err := client.SignIn(context.Background(), "ana@example.com", "bad")
			assert.Nil(t, creds)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, identity.CodeOf(err))
		})
	}
}

func TestClient_SignIn_UndecodableError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.SignIn(context.Background(), "a@b.c", "x")
	assert.Equal(t, identity.CodeUnknown, identity.CodeOf(err))
}

func TestClient_SignIn_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient("k", srv.URL, time.Second)

	_, err := client.SignIn(context.Background(), "a@b.c", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnavailable)
	assert.Equal(t, "", identity.CodeOf(err))
}

func TestClient_SignUp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{"localId": "new-uid", "email": "b@c.d"})
		})

		uid, err := client.SignUp(context.Background(), "b@c.d", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "new-uid", uid)
	})

	t.Run("weak password", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, "WEAK_PASSWORD : Password should be at least 6 characters")
		})

		_, err := client.SignUp(context.Background(), "b@c.d", "1")
		assert.Equal(t, identity.CodeWeakPassword, identity.CodeOf(err))
	})

	t.Run("email exists", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, "EMAIL_EXISTS")
		})

		_, err := client.SignUp(context.Background(), "b@c.d", "secret1")
		assert.Equal(t, identity.CodeEmailExists, identity.CodeOf(err))
	})
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "WEAK_PASSWORD", errorCode("WEAK_PASSWORD : Password should be at least 6 characters"))
	assert.Equal(t, "EMAIL_EXISTS", errorCode("EMAIL_EXISTS"))
	assert.Equal(t, "", errorCode(""))
}
