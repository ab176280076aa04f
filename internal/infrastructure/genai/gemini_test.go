package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestClient_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateResponse("  a shiny idea  ")))
	}))
	defer srv.Close()

	c := New("test-key", time.Second, WithBaseURL(srv.URL), WithModel("gemini-test"))

	text, err := c.Generate(context.Background(), "say something")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "a shiny idea" {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "say something" {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
}

func TestClient_Generate_NotConfigured(t *testing.T) {
	c := New("", time.Second)

	if _, err := c.Generate(context.Background(), "prompt"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	c := New("test-key", time.Second, WithBaseURL(srv.URL))

	_, err := c.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestClient_Generate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := New("test-key", time.Second, WithBaseURL(srv.URL))

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error on empty candidates")
	}
}

func TestClient_GenerateJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON mime type, got %+v", req.GenerationConfig)
		}
		_, _ = w.Write([]byte(candidateResponse("```json\n{\"title\": \"hi\", \"content\": \"there\"}\n```")))
	}))
	defer srv.Close()

	c := New("test-key", time.Second, WithBaseURL(srv.URL))

	var out struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.GenerateJSON(context.Background(), "prompt", &out); err != nil {
		t.Fatalf("generateJSON failed: %v", err)
	}
	if out.Title != "hi" || out.Content != "there" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestStripFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"no ``` in the middle ``` either", "no ``` in the middle ``` either"},
	}
	for _, c := range cases {
		if got := StripFence(c.in); got != c.want {
			t.Fatalf("StripFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
