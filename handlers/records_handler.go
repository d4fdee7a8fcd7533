package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/autou/mailtriage/storage"
)

type RecordsHandler struct {
	store  RecordStore
	logger *slog.Logger
}

func NewRecordsHandler(store RecordStore, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{
		store:  store,
		logger: logger,
	}
}

func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list email records", slog.String("error", err.Error()))
		writeJSONError(w, "Erro ao buscar respostas", http.StatusInternalServerError)
		return
	}

	payload := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		payload = append(payload, map[string]interface{}{
			"id":                 rec.ID,
			"email_content":      rec.EmailText,
			"suggested_response": rec.SuggestedResponse,
			"category":           rec.Classification,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *RecordsHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	var body struct {
		SuggestedResponse string `json:"suggested_response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SuggestedResponse == "" {
		writeJSONError(w, "Campo 'suggested_response' é obrigatório", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateResponse(r.Context(), id, body.SuggestedResponse); err != nil {
		h.writeStoreError(w, id, err)
		return
	}

	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":            "Resposta atualizada com sucesso",
		"id":                 rec.ID,
		"email_content":      rec.EmailText,
		"category":           rec.Classification,
		"suggested_response": rec.SuggestedResponse,
	})
}

func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Resposta deletada com sucesso"})
}

func (h *RecordsHandler) writeStoreError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONError(w, "Registro não encontrado", http.StatusNotFound)
		return
	}
	h.logger.Error("Email record operation failed",
		slog.Int64("record_id", id),
		slog.String("error", err.Error()))
	writeJSONError(w, "Erro interno ao acessar o registro", http.StatusInternalServerError)
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSONError(w, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
