package advisor

import (
	"errors"
	"fmt"
)

// ErrMissingUserID is returned when a profile submission succeeds at the
// HTTP level but the response carries no usable user_id.
var ErrMissingUserID = errors.New("response did not include a user id")

// APIError is a non-2xx response from the advisory backend.
type APIError struct {
	Status int
	// Detail is the server's "detail" message, if it sent one.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
