package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/service"
)

// PublicHandler serves the token-gated, unauthenticated surface. The token in
// the path is the sole capability.
type PublicHandler struct {
	submissions service.SubmissionService
	maxFileSize int64
}

func NewPublicHandler(submissions service.SubmissionService, maxFileSizeMB int64) *PublicHandler {
	return &PublicHandler{
		submissions: submissions,
		maxFileSize: maxFileSizeMB << 20,
	}
}

// HandleFetch returns the sanitized view of what the request asks for.
func (h *PublicHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	view, err := h.submissions.FetchByToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type submitRequest struct {
	Payload json.RawMessage `json:"payload"`
	Consent *domain.Consent `json:"consent,omitempty"`
}

// HandleSubmit completes the request with the submitted payload.
func (h *PublicHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	receipt, err := h.submissions.Submit(r.Context(), token, body.Payload, body.Consent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// HandleDocumentUpload forwards one uploaded document to the storage provider.
func (h *PublicHandler) HandleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	docKey := r.FormValue("doc_key")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file field is required"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read file"})
		return
	}
	if int64(len(content)) > h.maxFileSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		return
	}

	stored, err := h.submissions.UploadDocument(r.Context(), token, docKey, header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file_id": stored.FileID})
}
