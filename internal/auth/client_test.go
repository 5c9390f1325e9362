package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

func TestClient_SignIn(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		status    int
		body      string
		wantErrIs error
		notErrIs  error
	}

	tests := []testCase{
		{
			name:   "Success",
			status: http.StatusOK,
			body:   `{"access_token":"tok","refresh_token":"ref","expires_in":3600,"user":{"id":"` + userID.String() + `"}}`,
		},
		{
			name:      "EmailNotConfirmedByCode",
			status:    http.StatusBadRequest,
			body:      `{"code":400,"error_code":"email_not_confirmed","msg":"Email not confirmed"}`,
			wantErrIs: auth.ErrEmailNotConfirmed,
		},
		{
			name:      "MessageTextAloneIsNotTrusted",
			status:    http.StatusBadRequest,
			body:      `{"error":"invalid_grant","error_description":"Email not confirmed"}`,
			wantErrIs: auth.ErrAuthFailed,
			notErrIs:  auth.ErrEmailNotConfirmed,
		},
		{
			name:      "InvalidCredentials",
			status:    http.StatusBadRequest,
			body:      `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`,
			wantErrIs: auth.ErrInvalidCredentials,
			notErrIs:  auth.ErrEmailNotConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/token", r.URL.Path)
				assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
				assert.Equal(t, "anon-key", r.Header.Get("apikey"))

				var creds map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, "ana@example.com", creds["email"])

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := auth.NewClient(srv.URL+"/", "anon-key", nil).SignIn(context.Background(), "ana@example.com", "pw")
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)

				if tt.notErrIs != nil {
					assert.False(t, errors.Is(err, tt.notErrIs))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "tok", got.AccessToken)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestClient_SignUp_NeedsConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","email":"ana@example.com"}`))
	}))
	defer srv.Close()

	got, err := auth.NewClient(srv.URL, "anon-key", nil).SignUp(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMessage(t *testing.T) {
	notConfirmed := &auth.Error{Status: 400, Code: "email_not_confirmed"}

	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyEmailNotConfirmed), auth.Message(notConfirmed, i18n.PT))
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyAuthError), auth.Message(errors.New("boom"), i18n.PT))
}
