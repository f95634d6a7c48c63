package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"taskcraft/models"
	"taskcraft/services"
	"taskcraft/services/designer"

	"github.com/gorilla/mux"
)

type DesignerHandler struct {
	service *designer.Service
}

func NewDesignerHandler(service *designer.Service) *DesignerHandler {
	return &DesignerHandler{service: service}
}

func (h *DesignerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/designer/sessions", h.StartSession).Methods("POST")
	router.HandleFunc("/designer/sessions", h.ListSessions).Methods("GET")
	router.HandleFunc("/designer/sessions/{id}", h.GetState).Methods("GET")
	router.HandleFunc("/designer/sessions/{id}", h.DeleteSession).Methods("DELETE")
	router.HandleFunc("/designer/sessions/{id}/messages", h.SubmitMessage).Methods("POST")
}

func (h *DesignerHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received start session request")

	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode start session request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Topic) == "" {
		log.Printf("[ERROR] No topic provided in start session request")
		h.writeErrorResponse(w, http.StatusBadRequest, "A topic is required")
		return
	}

	resp, err := h.service.StartSession(req.SessionID, req.Topic, req.UnitTitle, req.GradeLabel)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateSession) {
			h.writeErrorResponse(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("[ERROR] Start session failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[INFO] Start session completed successfully")
	h.writeJSONResponse(w, http.StatusCreated, resp)
}

func (h *DesignerHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received message for session %s", sessionID)

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode message request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		log.Printf("[ERROR] Empty message text for session %s", sessionID)
		h.writeErrorResponse(w, http.StatusBadRequest, "Message text is required")
		return
	}

	resp, err := h.service.HandleMessage(sessionID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Message handling failed for session %s: %v", sessionID, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[INFO] Message handled successfully for session %s", sessionID)
	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *DesignerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received state request for session %s", sessionID)

	state, err := h.service.GetState(sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] State lookup failed for session %s: %v", sessionID, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, state)
}

func (h *DesignerHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received list sessions request")
	h.writeJSONResponse(w, http.StatusOK, h.service.ListSessions())
}

func (h *DesignerHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received delete request for session %s", sessionID)

	if err := h.service.DeleteSession(sessionID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR] Delete failed for session %s: %v", sessionID, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DesignerHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *DesignerHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
