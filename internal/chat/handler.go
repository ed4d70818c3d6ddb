package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pregnancy-tracker/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type respondRequest struct {
	Message string `json:"message"`
}

func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Respond(r.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to respond", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	history, err := h.svc.History(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load chat history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(history)
}

func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrainingID == uuid.Nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.svc.Feedback(r.Context(), req); err != nil {
		if errors.Is(err, ErrTrainingEntryNotFound) {
			http.Error(w, "Training entry not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to record feedback: "+err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Feedback recorded successfully"})
}

// RegisterRoutes mounts the chat routes relative to /users/{userID}.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", h.Respond)
		r.Get("/history", h.History)
		r.Post("/feedback", h.Feedback)
	})
}
