package pdns

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
)

var (
	// ErrUnreachable is returned when a server cannot be reached or
	// does not answer within the configured timeout.
	ErrUnreachable = errors.New("server unreachable")

	// ErrAuth is returned when a server rejects the API key.
	ErrAuth = errors.New("authentication rejected")

	// ErrNotFound is returned when a zone or RRset does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a zone with that name exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation is returned when the server or the client rejects
	// the submitted data.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownServer is returned when no client is registered under
	// the requested server name.
	ErrUnknownServer = errors.New("unknown server")
)

// APIError is an API failure outside the mapped status codes.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected api response %d: %s", e.StatusCode, e.Message)
}

// classify maps transport and API failures onto the package errors so
// callers can branch with errors.Is and errors.As.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pdnsErr *powerdns.Error

	if errors.As(err, &pdnsErr) {
		msg := pdnsErr.Message
		if msg == "" {
			msg = pdnsErr.Status
		}

		switch pdnsErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Wrap(ErrAuth, msg)
		case http.StatusNotFound:
			return errors.Wrap(ErrNotFound, msg)
		case http.StatusConflict:
			return errors.Wrap(ErrAlreadyExists, msg)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.Wrap(ErrValidation, msg)
		default:
			return &APIError{StatusCode: pdnsErr.StatusCode, Message: msg}
		}
	}

	// a canceled context means the user moved on, not a broken server
	if errors.Is(err, context.Canceled) {
		return err
	}

	var urlErr *url.Error

	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrUnreachable, err.Error())
	}

	return err
}
