package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSubject = "general"
	DefaultGrade   = 5
)

// ChatRequest is a student's question with its tutoring context.
type ChatRequest struct {
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
	Grade   int    `json:"grade,omitempty"`
}

// ChatResponse carries a reply for the student. Safety and upstream
// failures are also reported through Reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatError is returned when the question itself is missing.
type ChatError struct {
	Error string `json:"error"`
}

// DecodeChatRequest reads a chat body field by field. A body that is absent,
// malformed or not a JSON object decodes to the zero request; fields of the
// wrong type are ignored.
func DecodeChatRequest(raw []byte) ChatRequest {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		body = nil
	}

	var req ChatRequest
	if s, ok := body["message"].(string); ok {
		req.Message = s
	}
	if s, ok := body["subject"].(string); ok {
		req.Subject = s
	}
	req.Grade = parseGrade(body["grade"])

	return req.Normalized()
}

// Normalized trims the message, lower-cases the subject and fills defaults.
func (r ChatRequest) Normalized() ChatRequest {
	r.Message = strings.TrimSpace(r.Message)

	r.Subject = strings.ToLower(strings.TrimSpace(r.Subject))
	if r.Subject == "" {
		r.Subject = DefaultSubject
	}

	if r.Grade == 0 {
		r.Grade = DefaultGrade
	}
	return r
}

// parseGrade accepts JSON numbers and numeric strings; anything else is 0.
func parseGrade(v any) int {
	switch g := v.(type) {
	case float64:
		if math.IsNaN(g) || math.IsInf(g, 0) || math.Abs(g) > math.MaxInt32 {
			return 0
		}
		return int(g)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(g))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
