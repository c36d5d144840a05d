package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/aichat/internal/common"
)

// errorResponse is the wire shape of every failure: a human-readable message
// plus a stable machine-readable kind. Internal diagnostics never leak here.
type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Message: message, Kind: kind})
}

// writeServiceError maps service-layer sentinels to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, common.ErrorConflict):
		writeError(w, http.StatusConflict, "conflict", "user already exists")
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not_found", "chat not found")
	case errors.Is(err, common.ErrorEngine):
		writeError(w, http.StatusBadGateway, "engine", "failed to generate AI response")
	default:
		writeError(w, http.StatusInternalServerError, "store", "server error")
	}
}
