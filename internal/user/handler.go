package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	u, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(u)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update profile: "+err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(u)
}

func (h *Handler) SendDeleteOTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.RequestDeletion(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error sending OTP", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent successfully"})
}

type deleteAccountRequest struct {
	OTP string `json:"otp"`
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OTP == "" {
		http.Error(w, "OTP is required", http.StatusBadRequest)
		return
	}

	err = h.svc.Delete(r.Context(), id, req.OTP)
	switch {
	case errors.Is(err, ErrOTPNotFound):
		http.Error(w, "OTP not found or expired", http.StatusBadRequest)
	case errors.Is(err, ErrOTPInvalid):
		http.Error(w, "Invalid OTP", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
	default:
		json.NewEncoder(w).Encode(map[string]string{"message": "Account deleted successfully"})
	}
}

// RegisterRoutes mounts the profile routes relative to /users/{userID}.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.GetProfile)
	r.Put("/", h.UpdateProfile)
	r.Post("/delete-otp", h.SendDeleteOTP)
	r.Delete("/", h.DeleteAccount)
}
