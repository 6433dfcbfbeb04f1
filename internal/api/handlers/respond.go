package handlers

import (
	"net/http"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// fail writes the shared failure body with the status derived from the
// domain error.
func fail(w http.ResponseWriter, err error) {
	api.HandleError(w, err)
}

func userMessage(err error) string {
	if domainErr, ok := err.(*domain.DomainError); ok {
		return domainErr.Message
	}
	return "internal error"
}
