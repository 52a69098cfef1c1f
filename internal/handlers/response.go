package handlers

import (
	"encoding/json"
	"net/http"

	"tutorbot-backend/internal/models"
	"tutorbot-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps tutor outcomes to responses. Only the empty
// question case uses the error field.
func handleServiceError(w http.ResponseWriter, err error) {
	switch err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, models.ChatError{Error: services.UserReply("", err)})
	case *services.SafetyRejection:
		writeJSON(w, http.StatusForbidden, models.ChatResponse{Reply: services.UserReply("", err)})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Reply: services.UserReply("", err)})
	}
}
