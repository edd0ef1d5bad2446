package verdicts_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veracity-io/veracity/internal/verdicts"
	"github.com/veracity-io/veracity/pkg/pagination"
	"github.com/veracity-io/veracity/pkg/routes"
)

func newTestMux(store *fakeStore, cls *fakeClassifier) *http.ServeMux {
	sys := newService(store, newFakeVolatile(), cls)
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerClassify(t *testing.T) {
	store := newFakeStore()
	cls := &fakeClassifier{
		response: "CLASSIFICATION: TRUSTED\nDETAILS: Signed vendor build.",
	}
	mux := newTestMux(store, cls)

	body := strings.NewReader(`{"hash":"abc123","expected":"setup.exe"}`)
	req := httptest.NewRequest("POST", "/verdicts/classify", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var v verdicts.Verdict
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if v.Hash != "abc123" {
		t.Errorf("hash = %q, want abc123", v.Hash)
	}
	if v.Badge != verdicts.BadgeTrusted {
		t.Errorf("badge = %q, want %q", v.Badge, verdicts.BadgeTrusted)
	}
	if v.Details != "Signed vendor build." {
		t.Errorf("details = %q", v.Details)
	}
}

func TestHandlerClassifyMissingHash(t *testing.T) {
	mux := newTestMux(newFakeStore(), &fakeClassifier{})

	req := httptest.NewRequest("POST", "/verdicts/classify", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerClassifyMalformedBody(t *testing.T) {
	mux := newTestMux(newFakeStore(), &fakeClassifier{})

	req := httptest.NewRequest("POST", "/verdicts/classify", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerClassifyUnavailableClassifier(t *testing.T) {
	cls := &fakeClassifier{err: errors.New("model unreachable")}
	mux := newTestMux(newFakeStore(), cls)

	req := httptest.NewRequest("POST", "/verdicts/classify", strings.NewReader(`{"hash":"abc123"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error body missing error field")
	}
}

func TestHandlerFind(t *testing.T) {
	store := newFakeStore()
	stored := sampleVerdict("abc123")
	store.records[stored.Hash] = stored
	mux := newTestMux(store, &fakeClassifier{})

	req := httptest.NewRequest("GET", "/verdicts/abc123", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var v verdicts.Verdict
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if v.Hash != "abc123" {
		t.Errorf("hash = %q, want abc123", v.Hash)
	}
}

func TestHandlerFindNotFound(t *testing.T) {
	mux := newTestMux(newFakeStore(), &fakeClassifier{})

	req := httptest.NewRequest("GET", "/verdicts/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerList(t *testing.T) {
	store := newFakeStore()
	result := pagination.NewPageResult(
		[]verdicts.Verdict{*sampleVerdict("abc123")}, 1, 1, 20,
	)
	store.listResult = &result
	mux := newTestMux(store, &fakeClassifier{})

	req := httptest.NewRequest("GET", "/verdicts?page=1&page_size=20", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page pagination.PageResult[verdicts.Verdict]
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Errorf("page = %+v, want 1 record", page)
	}
}

func TestHandlerSearch(t *testing.T) {
	store := newFakeStore()
	mux := newTestMux(store, &fakeClassifier{})

	body := strings.NewReader(`{"page":1,"page_size":10,"badge":"TRUSTED"}`)
	req := httptest.NewRequest("POST", "/verdicts/search", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if store.lastPage.PageSize != 10 {
		t.Errorf("page size = %d, want 10", store.lastPage.PageSize)
	}
}

func TestHandlerDelete(t *testing.T) {
	store := newFakeStore()
	stored := sampleVerdict("abc123")
	store.records[stored.Hash] = stored
	mux := newTestMux(store, &fakeClassifier{})

	req := httptest.NewRequest("DELETE", "/verdicts/abc123", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, ok := store.records["abc123"]; ok {
		t.Error("record not deleted")
	}
}

func TestHandlerDeleteNotFound(t *testing.T) {
	mux := newTestMux(newFakeStore(), &fakeClassifier{})

	req := httptest.NewRequest("DELETE", "/verdicts/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
