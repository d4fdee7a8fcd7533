package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/autou/mailtriage/classifier"
	"github.com/autou/mailtriage/pipeline"
	"github.com/autou/mailtriage/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRunner struct {
	result *pipeline.Result
	err    error
	gotSub pipeline.Submission
}

func (s *stubRunner) Run(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error) {
	s.gotSub = sub
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type memStore struct {
	records map[int64]*storage.EmailRecord
	nextID  int64
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int64]*storage.EmailRecord)}
}

func (m *memStore) Save(ctx context.Context, rec *storage.EmailRecord) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.nextID++
	rec.ID = m.nextID
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *memStore) List(ctx context.Context) ([]storage.EmailRecord, error) {
	var out []storage.EmailRecord
	for id := m.nextID; id >= 1; id-- {
		if rec, ok := m.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id int64) (*storage.EmailRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

func (m *memStore) UpdateResponse(ctx context.Context, id int64, response string) error {
	rec, ok := m.records[id]
	if !ok {
		return storage.ErrNotFound
	}
	rec.SuggestedResponse = response
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func successResult() *pipeline.Result {
	return &pipeline.Result{
		RunID:        "run-1",
		OriginalText: "Preciso de suporte com o sistema.",
		Category:     classifier.CategoryProductive,
		Reply:        "Prezado(a) cliente,\n\nNossa equipe vai analisar.\n\nAtenciosamente,\nAutoU.",
	}
}

func TestClassifyHandler_InlineText(t *testing.T) {
	runner := &stubRunner{result: successResult()}
	store := newMemStore()
	h := NewClassifyHandler(runner, store, testLogger())

	form := url.Values{"email_text": {"Preciso de suporte com o sistema."}}
	req := httptest.NewRequest("POST", "/api/classify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["category"] != "Produtivo" {
		t.Errorf("expected Produtivo, got %v", resp["category"])
	}
	if resp["confidence"] != 0.85 {
		t.Errorf("expected 0.85 confidence for a support request, got %v", resp["confidence"])
	}
	if runner.gotSub.InlineText != "Preciso de suporte com o sistema." {
		t.Errorf("runner received wrong submission: %+v", runner.gotSub)
	}
	if len(store.records) != 1 {
		t.Errorf("expected one persisted record, got %d", len(store.records))
	}
}

func TestClassifyHandler_FileUpload(t *testing.T) {
	runner := &stubRunner{result: successResult()}
	h := NewClassifyHandler(runner, newMemStore(), testLogger())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "email.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("Bom dia, preciso do relatório."))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/classify", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if runner.gotSub.Filename != "email.txt" {
		t.Errorf("expected file submission, got %+v", runner.gotSub)
	}
	if string(runner.gotSub.FileData) != "Bom dia, preciso do relatório." {
		t.Errorf("file data not passed through: %q", runner.gotSub.FileData)
	}
}

func TestClassifyHandler_NoInput(t *testing.T) {
	h := NewClassifyHandler(&stubRunner{}, newMemStore(), testLogger())

	req := httptest.NewRequest("POST", "/api/classify", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestClassifyHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "empty input",
			err:        &pipeline.Error{Kind: pipeline.KindEmptyInput, Message: "no usable text"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "extraction failure",
			err:        &pipeline.Error{Kind: pipeline.KindExtraction, Message: "bad pdf"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "classification failure",
			err:        &pipeline.Error{Kind: pipeline.KindClassification, Message: "bad literal"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "service failure",
			err:        &pipeline.Error{Kind: pipeline.KindService, Message: "timeout"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewClassifyHandler(&stubRunner{err: tt.err}, newMemStore(), testLogger())

			form := url.Values{"email_text": {"algum texto"}}
			req := httptest.NewRequest("POST", "/api/classify", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
