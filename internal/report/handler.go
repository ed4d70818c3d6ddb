package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

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

func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to create report", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	reports, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reports)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	reportID, ok := pathID(r, "reportID")
	if !ok {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Get(r.Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load report", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(rep)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	reportID, ok := pathID(r, "reportID")
	if !ok {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	data, err := h.svc.ExportPDF(r.Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "PDF export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", reportID))
	w.Write(data)
}

// RegisterRoutes mounts the report routes relative to /users/{userID}.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.CreateReport)
		r.Get("/", h.ListReports)
		r.Get("/{reportID}", h.GetReport)
		r.Get("/{reportID}/pdf", h.ExportPDF)
	})
}
