package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"tutorbot-backend/internal/models"
)

const maxChatBodyBytes = 1 << 20

type tutorService interface {
	Ask(ctx context.Context, req models.ChatRequest) (string, error)
}

type ChatHandler struct {
	tutor tutorService
}

func NewChatHandler(tutor tutorService) *ChatHandler {
	return &ChatHandler{tutor: tutor}
}

// Chat answers POST /chat. The body is decoded leniently: anything that is
// not a JSON object counts as an empty request.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Ctx(r.Context()).Warn().Int64("limit", tooLarge.Limit).Msg("chat request body too large, truncated")
		} else {
			log.Ctx(r.Context()).Warn().Err(err).Msg("chat request body read failed")
		}
	}
	req := models.DecodeChatRequest(raw)

	reply, err := h.tutor.Ask(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}
