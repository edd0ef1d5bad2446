package verdicts

import (
	"errors"
	"net/http"
)

// Domain errors for verdict operations.
var (
	ErrNotFound     = errors.New("verdict not found")
	ErrDuplicate    = errors.New("verdict already exists")
	ErrHashRequired = errors.New("hash is required")
	ErrClassifier   = errors.New("classification failed")
)

// MapHTTPStatus maps verdict domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrHashRequired) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrClassifier) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
