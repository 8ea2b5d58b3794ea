package api

import (
	"errors"
	"fmt"
	"net/http"
)

// genericErrorMessage is shown when the server error body carries no
// usable message.
const genericErrorMessage = "the server reported an error"

// APIError is the tagged failure result of a gateway call: the HTTP status
// plus the server-provided message (or a generic fallback). Transport
// failures are not APIErrors; they surface as wrapped errors from do().
type APIError struct {
	Status  int
	Message string
}

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = genericErrorMessage
	}
	return &APIError{Status: status, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// AsAPIError unwraps err into an *APIError when the failure came from the
// server rather than the transport.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthRejection reports whether err is a 401/403 from the server.
func IsAuthRejection(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}
