package disease

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "img" || r.Header.Get("Content-Type") != "image/jpeg" {
			t.Errorf("unexpected request %q %s", body, r.Header.Get("Content-Type"))
		}
		_, _ = w.Write([]byte(`{"logits":[0.5,1.5]}`))
	}))
	defer srv.Close()

	logits, err := NewHTTPClassifier(srv.URL, time.Second).Classify(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logits) != 2 || logits[1] != 1.5 {
		t.Fatalf("unexpected logits %v", logits)
	}
}

func TestHTTPClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewHTTPClassifier(srv.URL, time.Second).Classify(context.Background(), []byte("img"), "image/jpeg"); err == nil {
		t.Fatal("expected error")
	}
}
