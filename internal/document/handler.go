package handler

import (
	"encoding/json"
	"errors"
	"io"
	"naskah/internal/document/model"
	"naskah/internal/document/service"
	"naskah/middleware"
	"naskah/pkg/logger"
	"net/http"
)

type DocumentHandler struct {
	Service *service.DocumentService
}

func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: service}
}

func (h *DocumentHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.Document
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// With auth on, an anonymous document is attributed to the caller.
	if userID, ok := middleware.UserID(r.Context()); ok && req.Author.ID == "" {
		req.Author.ID = userID
	}

	doc, err := h.Service.SaveDocument(&req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to save document: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, doc)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	docID := r.URL.Query().Get("id")
	if docID == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	doc, err := h.Service.GetDocument(docID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, doc)
}

func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var criteria model.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.Service.SearchDocuments(&criteria))
}

func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.HealthResponse{Status: "ok", Documents: h.Service.Count()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
