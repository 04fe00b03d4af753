package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/backoffice-idm/pkg/account"
)

func setupRouter(t *testing.T) (*chi.Mux, *jwtauth.JWTAuth, *account.InMemoryRepository) {
	t.Helper()
	repo := account.NewInMemoryRepository()
	service := account.NewService(repo)

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Route("/account", NewHandler(service).Routes)
	})
	return r, tokenAuth, repo
}

func seedAccount(t *testing.T, repo *account.InMemoryRepository, email, password string) account.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	acct, err := repo.Save(context.Background(), account.Account{
		Name:       "Test",
		Surname:    "Account",
		Age:        30,
		NationalID: "1234567890101",
		Email:      email,
		Password:   string(hash),
		Active:     true,
	})
	require.NoError(t, err)
	return acct
}

func putJSON(t *testing.T, router http.Handler, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "BEARER "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChangePasswordEndpoint(t *testing.T) {
	router, tokenAuth, repo := setupRouter(t)
	seedAccount(t, repo, "user@example.com", "OldPass1!")

	_, token, err := tokenAuth.Encode(map[string]interface{}{"sub": "user@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       ChangePasswordRequest
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "wrong current password",
			body:       ChangePasswordRequest{CurrentPassword: "Incorrect1!", NewPassword: "NewPass2@", ConfirmPassword: "NewPass2@"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Current password is incorrect",
		},
		{
			name:       "confirmation mismatch",
			body:       ChangePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "NewPass2@", ConfirmPassword: "Other3#aa"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Passwords do not match",
		},
		{
			name:       "success",
			body:       ChangePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "NewPass2@", ConfirmPassword: "NewPass2@"},
			wantStatus: http.StatusOK,
			wantMsg:    "Password updated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := putJSON(t, router, "/account/password", token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp MessageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}

	// New password is in effect
	updated, err := repo.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("NewPass2@")))
}

func TestChangePasswordRequiresToken(t *testing.T) {
	router, tokenAuth, repo := setupRouter(t)
	seedAccount(t, repo, "user@example.com", "OldPass1!")

	body := ChangePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "NewPass2@", ConfirmPassword: "NewPass2@"}

	rec := putJSON(t, router, "/account/password", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token for a subject with no account
	_, token, err := tokenAuth.Encode(map[string]interface{}{"sub": "ghost@example.com"})
	require.NoError(t, err)
	rec = putJSON(t, router, "/account/password", token, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
