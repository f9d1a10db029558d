package router

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yieldx/internal/auth"
	"yieldx/internal/crop"
	"yieldx/internal/disease"
	"yieldx/internal/i18n"
	"yieldx/internal/recommend"
	"yieldx/internal/soil"
	"yieldx/internal/voice"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := soil.ParseStore(strings.NewReader(`{"AP":[{"name":"Guntur","ph":"6.0","climate":"Tropical"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := crop.ParseCatalog(strings.NewReader("crop,ph,climate\nRice,6.2,tropical\nCotton,8.0,arid\n"))
	if err != nil {
		t.Fatal(err)
	}

	authService := auth.NewService(auth.NewInMemoryFarmerRepository())
	recommendService := recommend.NewService(recommend.Deps{
		Resolver: soil.NewResolver(store, nil),
		Catalog:  catalog.Records,
		Prices:   crop.PriceTable{"Rice": 1800},
		History:  recommend.NewInMemoryHistoryRepository(),
		Farmers:  authService,
	})

	return NewRouter(Handlers{
		Auth:      auth.NewHandler(authService),
		Languages: i18n.NewHandler(false),
		Soil:      soil.NewHandler(store),
		Recommend: recommend.NewHandler(recommendService),
		Disease:   disease.NewHandler(disease.NewService(nil, nil, nil, nil), nil),
		Voice:     voice.NewHandler(voice.NewService(nil, nil, nil, nil), nil),
	}, Options{})
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestRecommendRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/recommend?state=AP&district=Guntur", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	want := `"recommendations":[{"crop":"Rice","price":1800,"climate":"Tropical"}]`
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/me", "/me/recommendations"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestChatRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("message=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "You said: hello") {
		t.Fatalf("unexpected chat response %d %s", w.Code, w.Body.String())
	}
}

func multipartUpload(t *testing.T, path, filename string, size int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0xff}, size)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRoute_SizeLimit(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "/upload?lang=hi", "leaf.jpg", 1024))
	if w.Code != http.StatusOK {
		t.Fatalf("expected small upload to succeed, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "/upload?lang=hi", "leaf.jpg", 11<<20))
	if w.Code < 400 || w.Code >= 500 {
		t.Fatalf("expected oversized upload to be rejected, got %d %s", w.Code, w.Body.String())
	}
}

func TestVoiceRoute_SizeLimit(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "/voice", "clip.webm", 21<<20))
	if w.Code < 400 || w.Code >= 500 {
		t.Fatalf("expected oversized audio to be rejected, got %d %s", w.Code, w.Body.String())
	}
}
