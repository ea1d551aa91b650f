package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/pipeline"
)

// analyzeRequest is the body of POST /api/v1/analyze.
type analyzeRequest struct {
	Code string `json:"code"`
}

// analyzeResponse is returned for both successful analyses and code-level
// failures. Error is set (with status 200) when the submitted code could
// not be analyzed, e.g. on a Python syntax error.
type analyzeResponse struct {
	Summary         string `json:"summary,omitempty"`
	SummaryError    string `json:"summary_error,omitempty"`
	FlowchartBase64 string `json:"flowchart_base64,omitempty"`
	DOT             string `json:"dot,omitempty"`
	Functions       int    `json:"functions"`
	Error           string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Error: "invalid JSON body"})
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:    req.Code,
		Formats:   []string{pipeline.FormatPNG, pipeline.FormatDOT},
		Summarize: s.runner.Summarizer != nil,
	})
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	resp := analyzeResponse{
		Summary:         result.Summary,
		FlowchartBase64: base64.StdEncoding.EncodeToString(result.Artifacts[pipeline.FormatPNG]),
		DOT:             result.DOT,
		Functions:       result.Stats.FunctionCount,
	}
	// A dead summarizer yields a partial result, never a failed request:
	// the diagram ships and the summary failure is reported alongside it.
	if result.SummaryErr != nil {
		resp.SummaryError = errors.UserMessage(result.SummaryErr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeAnalyzeError maps pipeline errors to HTTP semantics. Failures caused
// by the submitted code itself are part of the normal response contract and
// keep status 200.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Error: errors.UserMessage(err)})
	case errors.ErrCodeParseFailed:
		writeJSON(w, http.StatusOK, analyzeResponse{Error: errors.UserMessage(err)})
	default:
		s.logger.Error("analyze failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, analyzeResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
