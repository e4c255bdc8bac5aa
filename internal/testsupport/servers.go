package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Reply produces the JSON text the fake model returns for the call-th request
// (zero-based) whose body was body.
type Reply func(call int, body map[string]any) (content string, status int)

// CompletionServer is a fake LLM endpoint that records request bodies.
type CompletionServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies []map[string]any
}

// Requests returns the decoded request bodies received so far.
func (s *CompletionServer) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.bodies...)
}

func (s *CompletionServer) record(t testing.TB, r *http.Request) (int, map[string]any) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("read request body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, body)
	return len(s.bodies) - 1, body
}

// NewOpenRouterServer starts a fake OpenAI-compatible chat completions
// endpoint. Its URL is usable directly as llm.Config.BaseURL.
func NewOpenRouterServer(t testing.TB, reply Reply) *CompletionServer {
	t.Helper()
	srv := &CompletionServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call, body := srv.record(t, r)
		content, status := reply(call, body)
		if status != 0 && status != http.StatusOK {
			http.Error(w, content, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]any{"content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewGeminiServer starts a fake generateContent endpoint. Its URL is usable
// as gemini.Config.BaseURL.
func NewGeminiServer(t testing.TB, reply Reply) *CompletionServer {
	t.Helper()
	srv := &CompletionServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"name":"models/test-model"}`)
			return
		}
		call, body := srv.record(t, r)
		content, status := reply(call, body)
		if status != 0 && status != http.StatusOK {
			http.Error(w, content, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": content}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NoCorrections always answers with an empty correction list.
func NoCorrections(int, map[string]any) (string, int) {
	return "[]", http.StatusOK
}
