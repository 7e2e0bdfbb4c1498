package reconcile

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

// ErrorKind classifies a failure so callers can tell bad input from a
// source outage from a failed write
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindUpstream   ErrorKind = "upstream"
	KindNotFound   ErrorKind = "not_found"
	KindStore      ErrorKind = "store"
	KindUnknown    ErrorKind = "unknown"
)

// Kind returns the kind of an error returned by the service
func Kind(err error) ErrorKind {
	if err == nil || !httperror.IsHTTPError(err) {
		return KindUnknown
	}

	switch code := httperror.GetStatusCode(err); {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return KindUpstream
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindStore
	}
}

func validationError(message string) error {
	return httperror.NewHTTPError(http.StatusBadRequest, message)
}

// upstreamError reports a source that could not be read. The run is aborted
// rather than matched against partial data. Only the message of an HTTP error
// cause reaches the client; the full cause is logged by the caller.
func upstreamError(source string, err error) error {
	cause := err.Error()
	if httperror.IsHTTPError(err) {
		cause = httperror.ToHTTPError(err).Message
	}
	return httperror.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("%s unavailable: %s", source, cause)).
		AddMetaValue("source", source)
}

func storeError(op string, err error) error {
	if httperror.IsHTTPError(err) {
		return err
	}
	return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to %s: %v", op, err))
}
