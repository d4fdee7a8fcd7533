package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/autou/mailtriage/pipeline"
	"github.com/autou/mailtriage/storage"
)

// PipelineRunner executes one triage run per submission.
type PipelineRunner interface {
	Run(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error)
}

// RecordStore persists completed triage outcomes.
type RecordStore interface {
	Save(ctx context.Context, rec *storage.EmailRecord) (int64, error)
	List(ctx context.Context) ([]storage.EmailRecord, error)
	Get(ctx context.Context, id int64) (*storage.EmailRecord, error)
	UpdateResponse(ctx context.Context, id int64, response string) error
	Delete(ctx context.Context, id int64) error
}

type ClassifyHandler struct {
	runner PipelineRunner
	store  RecordStore
	logger *slog.Logger
}

func NewClassifyHandler(runner PipelineRunner, store RecordStore, logger *slog.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		runner: runner,
		store:  store,
		logger: logger,
	}
}

func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.parseSubmission(w, r)
	if !ok {
		return
	}

	result, err := h.runner.Run(r.Context(), sub)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	record := &storage.EmailRecord{
		EmailText:         result.OriginalText,
		Classification:    string(result.Category),
		SuggestedResponse: result.Reply,
	}
	id, err := h.store.Save(r.Context(), record)
	if err != nil {
		h.logger.Error("Failed to persist email record",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()))
		writeJSONError(w, "Erro ao salvar o resultado da classificação", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                 id,
		"category":           string(result.Category),
		"confidence":         pseudoConfidence(result.OriginalText),
		"suggested_response": result.Reply,
		"email_content":      result.OriginalText,
	})
}

func (h *ClassifyHandler) parseSubmission(w http.ResponseWriter, r *http.Request) (pipeline.Submission, bool) {
	// 10 MB upload ceiling, same as the pre-parse limit on the form
	if err := r.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
		writeJSONError(w, "Falha ao processar o formulário", http.StatusBadRequest)
		return pipeline.Submission{}, false
	}

	file, header, err := r.FormFile("file")
	if err == nil && header.Filename != "" {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			writeJSONError(w, "Falha ao ler o arquivo enviado", http.StatusBadRequest)
			return pipeline.Submission{}, false
		}
		return pipeline.Submission{Filename: header.Filename, FileData: data}, true
	}

	if text := r.FormValue("email_text"); text != "" {
		return pipeline.Submission{InlineText: text}, true
	}

	writeJSONError(w, "Nenhum texto ou arquivo fornecido", http.StatusBadRequest)
	return pipeline.Submission{}, false
}

func (h *ClassifyHandler) writePipelineError(w http.ResponseWriter, err error) {
	kind := pipeline.KindOf(err)
	h.logger.Error("Pipeline run failed",
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()))

	switch kind {
	case pipeline.KindEmptyInput:
		writeJSONError(w, "Por favor, insira o texto do email ou faça o upload de um arquivo.", http.StatusBadRequest)
	case pipeline.KindExtraction:
		writeJSONError(w, "Não foi possível extrair texto do arquivo enviado.", http.StatusBadRequest)
	default:
		writeJSONError(w, "Erro ao processar o email junto ao serviço de IA.", http.StatusBadGateway)
	}
}

// pseudoConfidence is a keyword heuristic kept for the UI contract;
// classification itself carries no score.
func pseudoConfidence(originalText string) float64 {
	lower := strings.ToLower(originalText)
	if strings.Contains(lower, "suporte") || strings.Contains(lower, "solicitação") {
		return 0.85
	}
	return 0.75
}
