package imgbb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

func newTestClient(baseURL string) *Client {
	cfg := &Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(cfg, log).(*Client)
}

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotKey, gotField, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotField = header.Filename
		data, _ := io.ReadAll(file)
		gotBody = string(data)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"url":"https://i.ibb.co/xyz/photo.jpg"},"success":true,"status":200}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	url, err := client.Upload(context.Background(), strings.NewReader("image bytes"), 11, "photo.jpg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if url != "https://i.ibb.co/xyz/photo.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key must travel in query, got %q", gotKey)
	}
	if gotField != "photo.jpg" {
		t.Fatalf("unexpected multipart filename: %q", gotField)
	}
	if gotBody != "image bytes" {
		t.Fatalf("body corrupted in transit: %q", gotBody)
	}
}

func TestUploadNon200IsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "photo.jpg")
	if !errors.Is(err, domain.ErrUploadTransport) {
		t.Fatalf("expected ErrUploadTransport, got %v", err)
	}
}

func TestUploadMissingURLIsSemanticFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{},"success":true,"status":200}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "photo.jpg")
	if !errors.Is(err, domain.ErrUploadSemantic) {
		t.Fatalf("expected ErrUploadSemantic, got %v", err)
	}
}

func TestUploadMalformedBodyIsSemanticFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "photo.jpg")
	if !errors.Is(err, domain.ErrUploadSemantic) {
		t.Fatalf("expected ErrUploadSemantic, got %v", err)
	}
}

func TestUploadConnectionRefusedIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // сервер уже мёртв

	client := newTestClient(srv.URL)

	_, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "photo.jpg")
	if !errors.Is(err, domain.ErrUploadTransport) {
		t.Fatalf("expected ErrUploadTransport, got %v", err)
	}
}
