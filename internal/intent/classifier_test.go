package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func completionsServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func newTestClassifier(url string) *OpenAIClassifier {
	return NewOpenAIClassifier(url, "test-key", "gpt-4o-mini", 2*time.Second, time.UTC, &http.Client{Timeout: 3 * time.Second})
}

func TestOpenAIClassifier_Classify(t *testing.T) {
	t.Run("successful_classification", func(t *testing.T) {
		server := completionsServer(t, `{"action":"add_expense","amount":25,"category":"Mercado"}`, http.StatusOK)
		defer server.Close()

		in, err := newTestClassifier(server.URL).Classify(context.Background(), "gastei 25 no mercado")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Action != ActionAddExpense {
			t.Errorf("expected add_expense, got %q", in.Action)
		}
		if in.Amount.StringFixed(2) != "25.00" {
			t.Errorf("expected amount 25.00, got %s", in.Amount.String())
		}
	})

	t.Run("fenced_content", func(t *testing.T) {
		server := completionsServer(t, "```json\n{\"action\":\"get_balance\"}\n```", http.StatusOK)
		defer server.Close()

		in, err := newTestClassifier(server.URL).Classify(context.Background(), "quanto tenho?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Action != ActionGetBalance {
			t.Errorf("expected get_balance, got %q", in.Action)
		}
	})

	t.Run("non_json_content", func(t *testing.T) {
		server := completionsServer(t, "Desculpe, não entendi.", http.StatusOK)
		defer server.Close()

		if _, err := newTestClassifier(server.URL).Classify(context.Background(), "oi"); err == nil {
			t.Fatal("expected error for non-JSON content")
		}
	})

	t.Run("upstream_error_status", func(t *testing.T) {
		server := completionsServer(t, "", http.StatusInternalServerError)
		defer server.Close()

		if _, err := newTestClassifier(server.URL).Classify(context.Background(), "oi"); err == nil {
			t.Fatal("expected error for 500 status")
		}
	})

	t.Run("no_choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		if _, err := newTestClassifier(server.URL).Classify(context.Background(), "oi"); err == nil {
			t.Fatal("expected error for empty choices")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		c := NewOpenAIClassifier(server.URL, "test-key", "gpt-4o-mini", 50*time.Millisecond, time.UTC, &http.Client{})
		if _, err := c.Classify(context.Background(), "oi"); err == nil {
			t.Fatal("expected timeout error")
		}
	})
}
