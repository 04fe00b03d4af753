// Package api exposes self-service account management over HTTP. All
// routes expect a verified session token; the subject claim identifies
// the acting account.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/tendant/backoffice-idm/pkg/account"
)

// Handler serves the /account endpoints
type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the account endpoints on a router
func (h *Handler) Routes(r chi.Router) {
	r.Put("/password", h.ChangePassword)
}

// ChangePassword handles PUT /account/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email, err := subjectFromContext(r)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, MessageResponse{Message: "Unauthorized"})
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	acct, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		// Token subject no longer maps to an account
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, MessageResponse{Message: "Unauthorized"})
		return
	}

	err = h.service.ChangePassword(r.Context(), acct.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		status := http.StatusBadRequest
		message := "Failed to change password"

		switch {
		case errors.Is(err, account.ErrWrongPassword):
			message = "Current password is incorrect"
		case errors.Is(err, account.ErrPasswordMismatch):
			message = "Passwords do not match"
		default:
			slog.Error("Failed to change password", "error", err)
			status = http.StatusInternalServerError
			message = "An error occurred while changing the password"
		}

		render.Status(r, status)
		render.JSON(w, r, MessageResponse{Message: message})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Password updated"})
}

// subjectFromContext pulls the subject claim from the verified token.
func subjectFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("subject claim missing")
	}
	return sub, nil
}
