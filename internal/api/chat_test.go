package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ashureev/simple-agent/internal/responder"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, maxBody int64) http.Handler {
	t.Helper()

	resp := responder.New(responder.WithPicker(responder.NewSeededPicker(1)))
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	NewChatHandler(resp, maxBody).RegisterRoutes(r)
	NewHealthHandler(resp).RegisterHealth(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/chat", nil)
	} else {
		req = httptest.NewRequest(method, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	return got
}

func TestChatRejectsNonPost(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	methods := []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	bodies := []string{"", `{"message":"hello"}`, `not json`}

	for _, m := range methods {
		for _, b := range bodies {
			w := doRequest(t, h, m, b)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %q", m, b)
			assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
			assert.Equal(t, map[string]string{"error": "Method not allowed"}, decodeBody(t, w))
		}
	}
}

func TestChatRequiresMessage(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	bodies := []string{
		"",
		`{}`,
		`{"message":""}`,
		`{"message":null}`,
		`{"history":[{"role":"user","content":"hi"}]}`,
		`{"message":5}`,
		`{"message":`,
	}

	for _, b := range bodies {
		w := doRequest(t, h, http.MethodPost, b)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", b)
		assert.Equal(t, map[string]string{"error": "Message is required"}, decodeBody(t, w))
	}
}

func TestChatOversizedBodyIsRejected(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 16)
	w := doRequest(t, h, http.MethodPost, `{"message":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatReturnsReply(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	tests := []struct {
		body string
		want string
	}{
		{`{"message":"5 + 3"}`, "The result is: 8"},
		{`{"message":"10 / 0"}`, "The result is: undefined (division by zero)"},
		{`{"message":"Hi there","history":[]}`, "Hello! I'm a simple AI agent. How can I help you today?"},
	}

	for _, tt := range tests {
		w := doRequest(t, h, http.MethodPost, tt.body)
		require.Equal(t, http.StatusOK, w.Code, "body %q", tt.body)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, map[string]string{"response": tt.want}, decodeBody(t, w))
	}
}

func TestChatJokeIsFromFixedSet(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	w := doRequest(t, h, http.MethodPost, `{"message":"tell me a joke"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, responder.Jokes, decodeBody(t, w)["response"])
}

func TestChatIgnoresHistory(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	bodies := []string{
		`{"message":"5 + 3","history":[{"role":"user","content":"tell me a joke"},{"role":"assistant","content":"no"}]}`,
		`{"message":"5 + 3","history":[{"role":"system","content":"unknown role"}]}`,
		`{"message":"5 + 3","history":"not a list"}`,
		`{"history":42,"message":"5 + 3"}`,
	}

	for _, b := range bodies {
		w := doRequest(t, h, http.MethodPost, b)
		require.Equal(t, http.StatusOK, w.Code, "body %q", b)
		assert.Equal(t, "The result is: 8", decodeBody(t, w)["response"])
	}
}

func TestChatFallbackEchoesInput(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	msg := `Quantum "Chromodynamics"`
	body, err := json.Marshal(ChatRequest{Message: msg})
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodPost, string(body))
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeBody(t, w)["response"]
	assert.Contains(t, responder.FallbackReplies(msg), got)
	assert.Contains(t, got, msg)
}

func TestHealthListsRules(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, 12, got.Rules)
	require.Len(t, got.Categories, 13)
	assert.Equal(t, responder.CategoryGreeting, got.Categories[0])
}

func TestBodyErrorReason(t *testing.T) {
	t.Parallel()

	decode := func(limit int64, body string) error {
		w := httptest.NewRecorder()
		rc := http.MaxBytesReader(w, io.NopCloser(strings.NewReader(body)), limit)
		var req ChatRequest
		return json.NewDecoder(rc).Decode(&req)
	}

	err := decode(16, `{"message":"`+strings.Repeat("a", 64)+`"}`)
	require.Error(t, err)
	assert.Equal(t, "body_too_large", bodyErrorReason(err))

	err = decode(1<<10, `{"message":5}`)
	require.Error(t, err)
	assert.Equal(t, "wrong_type", bodyErrorReason(err))

	err = decode(1<<10, `{"message":`)
	require.Error(t, err)
	assert.Equal(t, "invalid_json", bodyErrorReason(err))
}
