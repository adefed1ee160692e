package handlers

import (
	"net/http"

	"along/internal/domain"
	"along/internal/http/middleware"
	"along/internal/utils"

	"github.com/gin-gonic/gin"
)

const authFailureMessage = "The server's API Key is invalid or missing. Please check the server configuration."

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	if kind, ok := domain.ProviderKind(err); ok {
		switch kind {
		case domain.ProviderInvalidInput:
			respondError(c, http.StatusBadRequest, string(kind), err.Error())
		case domain.ProviderAuth:
			respondError(c, http.StatusInternalServerError, string(kind), authFailureMessage)
		default:
			respondError(c, http.StatusBadGateway, string(domain.ProviderUnavailable),
				"The route service is unavailable right now. Please try again.")
		}
		return
	}

	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsInternal(err):
		utils.LogFailure(middleware.GetRequestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
	default:
		utils.LogFailure(middleware.GetRequestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to get route. Please try again.")
	}
}
