package devserver

import "net/http"

// httpError is attached to the gin context by handlers and rendered by the
// error middleware as {"detail": Detail}.
type httpError struct {
	Status int
	Detail string
	Err    error
}

func (e *httpError) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *httpError) Unwrap() error { return e.Err }

func badRequest(detail string) *httpError {
	return &httpError{Status: http.StatusBadRequest, Detail: detail}
}

func notFound(detail string) *httpError {
	return &httpError{Status: http.StatusNotFound, Detail: detail}
}

func unavailable(detail string) *httpError {
	return &httpError{Status: http.StatusServiceUnavailable, Detail: detail}
}

func internal(detail string, err error) *httpError {
	return &httpError{Status: http.StatusInternalServerError, Detail: detail, Err: err}
}
