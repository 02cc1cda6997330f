package tts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"serenade/internal/services/tts"
)

func TestGenerateSpeech(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/text-to-speech" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req tts.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "I love you" || req.ModelID != "m1" || req.VoiceID != "v1" {
			t.Fatalf("unexpected payload: %+v", req)
		}
		_, _ = w.Write([]byte("RIFFfakewav"))
	}))
	defer server.Close()

	client := tts.NewClient(server.URL, "secret", 5*time.Second)
	audio, err := client.GenerateSpeech(t.Context(), tts.Request{Text: "I love you", ModelID: "m1", VoiceID: "v1"})
	if err != nil {
		t.Fatalf("GenerateSpeech: %v", err)
	}
	if string(audio) != "RIFFfakewav" {
		t.Fatalf("unexpected audio: %q", audio)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestGenerateSpeechRejectsEmptyText(t *testing.T) {
	client := tts.NewClient("http://127.0.0.1:0", "", time.Second)
	if _, err := client.GenerateSpeech(t.Context(), tts.Request{}); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestGenerateSpeechStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"quota exceeded","code":"rate_limited"}`))
	}))
	defer server.Close()

	client := tts.NewClient(server.URL, "", 5*time.Second)
	_, err := client.GenerateSpeech(t.Context(), tts.Request{Text: "hi", VoiceID: "v1"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"quota exceeded", "rate_limited"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
}

func TestGenerateSpeechRawBodyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ruh roh", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := tts.NewClient(server.URL, "", 5*time.Second)
	_, err := client.GenerateSpeech(t.Context(), tts.Request{Text: "hi", VoiceID: "v1"})
	if err == nil || !strings.Contains(err.Error(), "ruh roh") {
		t.Fatalf("expected raw body in error, got %v", err)
	}
}

func TestGenerateSpeechEmptyAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := tts.NewClient(server.URL, "", 5*time.Second)
	if _, err := client.GenerateSpeech(t.Context(), tts.Request{Text: "hi", VoiceID: "v1"}); err == nil {
		t.Fatal("expected error for empty audio body")
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := tts.NewClient(server.URL, "", 5*time.Second)
	if err := client.HealthCheck(t.Context()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	down := tts.NewClient(server.URL+"/missing", "", 5*time.Second)
	if err := down.HealthCheck(t.Context()); err == nil {
		t.Fatal("expected failure for unhealthy provider")
	}
}
