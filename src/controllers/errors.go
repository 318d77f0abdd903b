package controllers

import (
	"errors"
	"net/http"

	"github.com/openshelf/openshelf-backend/src/services"
)

// statusFromError maps the service error taxonomy to HTTP statuses.
// Unknown errors are server faults; the transaction has already rolled
// back, so no partial state leaks.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrNotBorrowed):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyBorrowed),
		errors.Is(err, services.ErrBookBorrowed),
		errors.Is(err, services.ErrHasOpenLoans),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
