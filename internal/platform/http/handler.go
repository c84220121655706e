package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rgdevment/scam-shield/internal/service"
)

type Handler struct {
	service service.Service
}

func NewHandler(s service.Service) *Handler {
	return &Handler{
		service: s,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/analyze/call", h.AnalyzeCall)
	r.Post("/v1/analyze/message", h.AnalyzeMessage)
	r.Post("/v1/analyze/combined", h.AnalyzeCombined)
	r.Get("/v1/phone/{number}", h.PhoneRisk)
	r.Get("/v1/statistics", h.Statistics)
}

func (h *Handler) AnalyzeCall(w http.ResponseWriter, r *http.Request) {
	var req CallAnalysisRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assessment, alert, err := h.service.AnalyzeCall(r.Context(), req.ToInput())
	if err != nil {
		log.Printf("❌ ERROR AnalyzeCall: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, AnalysisResponse{Assessment: assessment, Alert: alert})
}

func (h *Handler) AnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageAnalysisRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assessment, alert, err := h.service.AnalyzeMessage(r.Context(), req.ToInput())
	if err != nil {
		log.Printf("❌ ERROR AnalyzeMessage: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, AnalysisResponse{Assessment: assessment, Alert: alert})
}

func (h *Handler) AnalyzeCombined(w http.ResponseWriter, r *http.Request) {
	var req CombinedAnalysisRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	overall, alert, err := h.service.AnalyzeCombined(r.Context(), req.callInput(), req.messageInput())
	if err != nil {
		if errors.Is(err, service.ErrNoInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("❌ ERROR AnalyzeCombined: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, CombinedAnalysisResponse{Assessment: overall, Alert: alert})
}

func (h *Handler) PhoneRisk(w http.ResponseWriter, r *http.Request) {
	phoneNumber := chi.URLParam(r, "number")

	if len(phoneNumber) < 5 {
		http.Error(w, "Invalid phone number", http.StatusBadRequest)
		return
	}

	risk, err := h.service.PhoneRisk(r.Context(), phoneNumber)
	if err != nil {
		log.Printf("❌ ERROR PhoneRisk: %v", err)
		http.Error(w, "Error retrieval failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, risk)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		log.Printf("❌ ERROR Statistics: %v", err)
		http.Error(w, "Error retrieval failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
