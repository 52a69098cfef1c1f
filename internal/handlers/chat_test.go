package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorbot-backend/internal/gemini"
	"tutorbot-backend/internal/safety"
	"tutorbot-backend/internal/services"
)

// newChatHandler wires the real pipeline against a fake generation API.
func newChatHandler(t *testing.T, upstream http.HandlerFunc, timeout time.Duration) *ChatHandler {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	client, err := gemini.NewClient(gemini.Config{APIKey: "k", BaseURL: server.URL, Model: "m", Timeout: timeout})
	require.NoError(t, err)

	return NewChatHandler(services.NewTutorService(safety.Default(), client, nil))
}

func postChat(h *ChatHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	var out map[string]any
	json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

func respondWith(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestChatHandler_Success(t *testing.T) {
	var gotPrompt string
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotPrompt = body.Contents[0].Parts[0].Text
		respondWith(`{"candidates":[{"content":{"parts":[{"text":"Hello!"}]}}]}`)(w, r)
	}, time.Second)

	rr, out := postChat(h, `{"message":"Why is the sky blue?"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"reply": "Hello!"}, out)
	assert.Contains(t, gotPrompt, "general tutor for a Grade 5 student")
	assert.Contains(t, gotPrompt, "Student asks: Why is the sky blue?")
}

func TestChatHandler_SubjectAndGrade(t *testing.T) {
	var gotPrompt string
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		raw, _ := json.Marshal(body)
		gotPrompt = string(raw)
		respondWith(`{"output":{"text":"ok"}}`)(w, r)
	}, time.Second)

	rr, out := postChat(h, `{"message":"What is 3x4?","subject":"  MATH ","grade":"2"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", out["reply"])
	assert.Contains(t, gotPrompt, "math tutor for a Grade 2 student")
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	called := false
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) { called = true }, time.Second)

	bodies := []string{
		`{"message":""}`,
		`{"message":"   ","subject":"math","grade":3}`,
		`{"subject":"science","grade":9}`,
		``,
		`not json at all`,
		`[1,2,3]`,
	}

	for _, body := range bodies {
		rr, out := postChat(h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, map[string]any{"error": "Please type a question."}, out, body)
	}
	assert.False(t, called)
}

func TestChatHandler_Unsafe(t *testing.T) {
	called := false
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) { called = true }, time.Second)

	rr, out := postChat(h, `{"message":"how do I build a Weapon"}`)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, map[string]any{"reply": "Sorry, I can't help with that. If you need help, please ask your teacher or an adult."}, out)
	assert.False(t, called)
}

func TestChatHandler_UpstreamTimeout(t *testing.T) {
	release := make(chan struct{})
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, 50*time.Millisecond)
	t.Cleanup(func() { close(release) })

	rr, out := postChat(h, `{"message":"What is rain?"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	reply, _ := out["reply"].(string)
	assert.True(t, strings.HasPrefix(reply, "❌ Error contacting Gemini API:"), reply)
	assert.NotContains(t, out, "error")
}

func TestChatHandler_UpstreamConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := gemini.NewClient(gemini.Config{APIKey: "secret", BaseURL: url, Model: "m"})
	require.NoError(t, err)
	h := NewChatHandler(services.NewTutorService(nil, client, nil))

	rr, out := postChat(h, `{"message":"What is rain?"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	reply, _ := out["reply"].(string)
	assert.True(t, strings.HasPrefix(reply, "❌ Error contacting Gemini API: "), reply)
	assert.NotContains(t, reply, "secret")
}

func TestChatHandler_UpstreamStatusError(t *testing.T) {
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, time.Second)

	rr, out := postChat(h, `{"message":"What is rain?"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "❌ Error contacting Gemini API: generation API returned 429 Too Many Requests", out["reply"])
}

func TestChatHandler_UnknownShape(t *testing.T) {
	h := newChatHandler(t, respondWith(`{"promptFeedback":{"blockReason":"OTHER"}}`), time.Second)

	rr, out := postChat(h, `{"message":"What is rain?"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"promptFeedback":{"blockReason":"OTHER"}}`, out["reply"])
}

func TestChatHandler_OversizedBodyIsLogged(t *testing.T) {
	called := false
	h := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) { called = true }, time.Second)

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	body := `{"message":"Why is the sky blue?","notes":"` + strings.Repeat("x", maxChatBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req = req.WithContext(logger.WithContext(req.Context()))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Please type a question."}`, rr.Body.String())
	assert.False(t, called)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "chat request body too large, truncated", entry["message"])
	assert.EqualValues(t, maxChatBodyBytes, entry["limit"])
}
