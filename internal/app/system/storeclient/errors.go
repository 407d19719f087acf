// internal/app/system/storeclient/errors.go
package storeclient

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Operations reported in RemoteError.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpPatch  = "patch"
	OpLogin  = "login"
	OpPing   = "ping"
)

// ErrInvalidCredentials is returned by Authenticate when the store rejects
// the email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

var errUnknownCollection = errors.New("unknown collection")

// RemoteError is any failed exchange with the collection API: transport
// failure, timeout, non-2xx status or an undecodable body.
//
// The client never retries. Records carry no idempotency key, so a blind
// retry of a create could write the same row twice; the caller decides.
type RemoteError struct {
	Collection string
	Operation  string
	Status     int    // 0 when no response was received
	Message    string // server-supplied message, if any
	Cause      error
}

func (e *RemoteError) Error() string {
	target := e.Collection
	if target == "" {
		target = "store"
	}
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %d %s: %s", e.Operation, target, e.Status, http.StatusText(e.Status), e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Operation, target, e.Status, http.StatusText(e.Status))
	case e.Cause != nil:
		return fmt.Sprintf("%s %s: %v", e.Operation, target, e.Cause)
	}
	return fmt.Sprintf("%s %s: remote error", e.Operation, target)
}

func (e *RemoteError) Unwrap() error { return e.Cause }

// Reason is the short, user-facing part of the error used in banners:
// the server message when there is one, otherwise the cause.
func (e *RemoteError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return "remote error"
}

// AsRemote extracts a RemoteError from err.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsNotFound reports a 404 from the store.
func IsNotFound(err error) bool {
	re, ok := AsRemote(err)
	return ok && re.Status == http.StatusNotFound
}

// IsConflict reports a 409 from the store (e.g. a duplicate enrollment).
func IsConflict(err error) bool {
	re, ok := AsRemote(err)
	return ok && re.Status == http.StatusConflict
}

// Reason returns the banner text for any error.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if re, ok := AsRemote(err); ok {
		return re.Reason()
	}
	return err.Error()
}
