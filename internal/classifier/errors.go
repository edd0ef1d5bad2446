package classifier

import "errors"

var (
	// ErrUnavailable indicates the model could not be reached or the request
	// failed in transport (network error, timeout, rejected auth).
	ErrUnavailable = errors.New("classifier unavailable")
	// ErrEmptyResponse indicates the model answered with no usable text.
	ErrEmptyResponse = errors.New("classifier returned empty response")
)
