package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/autou/mailtriage/storage"
)

func seededStore(t *testing.T) *memStore {
	t.Helper()
	store := newMemStore()
	_, err := store.Save(context.Background(), &storage.EmailRecord{
		EmailText:         "Preciso de uma atualização sobre o contrato.",
		Classification:    "Produtivo",
		SuggestedResponse: "Prezado(a) cliente, vamos verificar.",
	})
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func recordsRouter(store *memStore) *mux.Router {
	h := NewRecordsHandler(store, testLogger())
	r := mux.NewRouter()
	r.HandleFunc("/api/respostas", h.List).Methods("GET")
	r.HandleFunc("/api/respostas/{id}", h.UpdateResponse).Methods("PUT")
	r.HandleFunc("/api/respostas/{id}", h.Delete).Methods("DELETE")
	return r
}

func TestRecordsHandler_List(t *testing.T) {
	router := recordsRouter(seededStore(t))

	req := httptest.NewRequest("GET", "/api/respostas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected 1 record, got %d", len(payload))
	}
	if payload[0]["category"] != "Produtivo" {
		t.Errorf("unexpected category: %v", payload[0]["category"])
	}
}

func TestRecordsHandler_UpdateResponse(t *testing.T) {
	store := seededStore(t)
	router := recordsRouter(store)

	body := strings.NewReader(`{"suggested_response": "Resposta revisada."}`)
	req := httptest.NewRequest("PUT", "/api/respostas/1", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.records[1].SuggestedResponse != "Resposta revisada." {
		t.Errorf("response not updated: %q", store.records[1].SuggestedResponse)
	}
}

func TestRecordsHandler_UpdateMissingBody(t *testing.T) {
	router := recordsRouter(seededStore(t))

	req := httptest.NewRequest("PUT", "/api/respostas/1", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRecordsHandler_NotFound(t *testing.T) {
	router := recordsRouter(seededStore(t))

	tests := []struct {
		name   string
		method string
		body   string
	}{
		{"update unknown id", "PUT", `{"suggested_response": "x"}`},
		{"delete unknown id", "DELETE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/respostas/99", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", w.Code)
			}
		})
	}
}

func TestRecordsHandler_Delete(t *testing.T) {
	store := seededStore(t)
	router := recordsRouter(store)

	req := httptest.NewRequest("DELETE", "/api/respostas/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(store.records) != 0 {
		t.Errorf("record not deleted")
	}
}
