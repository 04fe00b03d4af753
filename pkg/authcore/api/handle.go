// Package api exposes the authentication flows over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/backoffice-idm/pkg/authcore"
	idmerrors "github.com/tendant/backoffice-idm/pkg/errors"
)

// Handler serves the /auth endpoints
type Handler struct {
	service *authcore.Service
}

func NewHandler(service *authcore.Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the auth endpoints on a router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/forgot-password/{email}", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
}

// mapFlowError turns the service's sentinel errors into coded errors
// carrying the client-facing message. Anything unexpected becomes an
// internal error with a generic message.
func mapFlowError(err error) *idmerrors.Error {
	switch {
	case errors.Is(err, authcore.ErrInvalidEmail):
		return idmerrors.New(idmerrors.ErrCodeInvalidEmail, "Invalid email")
	case errors.Is(err, authcore.ErrInvalidNationalID):
		return idmerrors.New(idmerrors.ErrCodeInvalidDocument, "Invalid national id")
	case errors.Is(err, authcore.ErrDuplicateAccount):
		return idmerrors.New(idmerrors.ErrCodeDuplicateAccount, "Account already exists")
	case errors.Is(err, authcore.ErrInvalidCredentials):
		return idmerrors.New(idmerrors.ErrCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, authcore.ErrAccountNotFound):
		return idmerrors.New(idmerrors.ErrCodeAccountNotFound, "Email not found")
	case errors.Is(err, authcore.ErrInvalidCode):
		return idmerrors.New(idmerrors.ErrCodeInvalidCode, "Invalid verification code")
	case errors.Is(err, authcore.ErrPasswordMismatch):
		return idmerrors.New(idmerrors.ErrCodePasswordMismatch, "Passwords do not match")
	default:
		slog.Error("Authentication flow failed", "error", err)
		return idmerrors.Internal("An unexpected error occurred")
	}
}

func renderFlowError(w http.ResponseWriter, r *http.Request, err error) {
	coded := mapFlowError(err)
	render.Status(r, coded.HTTPStatusCode())
	render.JSON(w, r, MessageResponse{Message: coded.Message})
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	acct, err := h.service.Signup(r.Context(), authcore.SignupParams{
		Name:       req.Name,
		Surname:    req.Surname,
		Age:        req.Age,
		NationalID: req.NationalID,
		Email:      req.Email,
	})
	if err != nil {
		renderFlowError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SignupResponse{
		ID:      acct.ID,
		Name:    acct.Name,
		Surname: acct.Surname,
		Email:   acct.Email,
		Active:  acct.Active,
	})
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Email and password are required"})
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		renderFlowError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, LoginResponse{
		Token:            result.Token,
		ExpiresInSeconds: result.ExpiresIn,
	})
}

// ForgotPassword handles POST /auth/forgot-password/{email}.
//
// An unregistered email answers 400 with "Email not found". That leaks
// account existence, but clients depend on the message, so it stays.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Email is required"})
		return
	}

	if err := h.service.ForgotPassword(r.Context(), email); err != nil {
		renderFlowError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Verification code sent"})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.VerificationCode, req.NewPassword, req.ConfirmPassword); err != nil {
		renderFlowError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Password updated"})
}
