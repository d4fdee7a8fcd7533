package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/autou/mailtriage/storage"
)

// Mailer delivers a reply body to a recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type SendHandler struct {
	store  RecordStore
	mailer Mailer
	logger *slog.Logger
}

func NewSendHandler(store RecordStore, mailer Mailer, logger *slog.Logger) *SendHandler {
	return &SendHandler{
		store:  store,
		mailer: mailer,
		logger: logger,
	}
}

func (h *SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To         string `json:"to"`
		Subject    string `json:"subject"`
		ResponseID int64  `json:"response_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.To == "" || body.Subject == "" || body.ResponseID == 0 {
		writeJSONError(w, "Parâmetros faltando", http.StatusBadRequest)
		return
	}

	rec, err := h.store.Get(r.Context(), body.ResponseID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONError(w, "Resposta sugerida não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to load email record for sending",
			slog.Int64("record_id", body.ResponseID),
			slog.String("error", err.Error()))
		writeJSONError(w, "Erro interno ao buscar a resposta", http.StatusInternalServerError)
		return
	}

	if err := h.mailer.Send(body.To, body.Subject, rec.SuggestedResponse); err != nil {
		writeJSONError(w, "Erro ao enviar e-mail", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "E-mail enviado com sucesso!"})
}
