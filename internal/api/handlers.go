package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dateguard/catfish/internal/analyze"
	"github.com/dateguard/catfish/internal/oracle"
	"github.com/dateguard/catfish/internal/schema"
)

// Analyzer is the orchestration surface the handlers depend on.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text, userNotes string) (*schema.TextAnalysis, error)
	AnalyzeImage(ctx context.Context, image []byte) (*schema.ImageAnalysis, error)
	AnalyzeAudio(ctx context.Context, audio []byte, contextText, site, pageURL string) (*schema.AudioAnalysis, error)
}

// Stable error codes surfaced to clients.
const (
	codeValidation        = "validation_error"
	codePayloadTooLarge   = "payload_too_large"
	codeOracleUnavailable = "oracle_unavailable"
	codeMalformedReply    = "malformed_reply"
	codeMissingField      = "missing_field"
	codeTranscodeFailed   = "transcode_failed"
	codeRateLimited       = "rate_limited"
	codeNotFound          = "not_found"
	codeInternal          = "internal_error"
)

type textRequest struct {
	Text      string `json:"text"`
	UserNotes string `json:"user_notes"`
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "text must not be empty")
		return
	}

	res, err := s.analyzer.AnalyzeText(r.Context(), req.Text, req.UserNotes)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	image, ok := s.readUpload(w, r, "image", analyze.MaxImageBytes)
	if !ok {
		return
	}

	res, err := s.analyzer.AnalyzeImage(r.Context(), image)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	audio, ok := s.readUpload(w, r, "audio", analyze.MaxAudioBytes)
	if !ok {
		return
	}

	res, err := s.analyzer.AnalyzeAudio(r.Context(), audio,
		r.FormValue("context_text"), r.FormValue("site"), r.FormValue("page_url"))
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload pulls one multipart file field out of the request, bounded
// at maxBytes. Writes the error response itself when the upload is bad.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, field+" exceeds the size limit")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, codeValidation, "expected multipart form upload")
		return nil, false
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "missing "+field+" field")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "failed to read upload")
		return nil, false
	}
	if int64(len(data)) > maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, field+" exceeds the size limit")
		return nil, false
	}
	return data, true
}

// writeAnalysisError maps pipeline errors to stable client-facing codes.
// Parse-failure reasons are surfaced; raw oracle replies never are.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var verr *analyze.ValidationError
	var malformed *oracle.MalformedReplyError
	var missing *schema.MissingFieldError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, codeValidation, verr.Msg)
	case errors.Is(err, analyze.ErrTranscode):
		s.logger.Error("transcoding failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeTranscodeFailed, "failed to process the audio upload")
	case errors.Is(err, oracle.ErrUnavailable):
		s.logger.Error("oracle unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeOracleUnavailable, "analysis provider is unavailable")
	case errors.As(err, &malformed):
		s.logger.Error("oracle reply unusable after repair attempt", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeMalformedReply, malformed.Error())
	case errors.As(err, &missing):
		s.logger.Error("oracle reply failed validation", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeMissingField, missing.Error())
	default:
		s.logger.Error("analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "analysis failed")
	}
}
