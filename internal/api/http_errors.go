package api

import (
	"errors"
	"net/http"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
)

func httpStatusForDomainError(err error) (int, bool) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr == nil {
		return 0, false
	}

	switch domErr.Category {
	case core.ErrCatValidation:
		return http.StatusUnprocessableEntity, true
	case core.ErrCatNotFound:
		return http.StatusNotFound, true
	case core.ErrCatConflict:
		return http.StatusConflict, true
	default:
		return http.StatusInternalServerError, true
	}
}

// respondDomainError maps err to a status code and writes it. Errors outside
// the domain taxonomy are logged and reported as 500 without their text.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	status, ok := httpStatusForDomainError(err)
	if !ok || status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondError(w, status, err.Error())
}
