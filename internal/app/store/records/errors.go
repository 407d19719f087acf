// internal/app/store/records/errors.go
package recordstore

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write breaks a unique index (a
	// repeated id, email, or enrollment).
	ErrDuplicate = errors.New("duplicate record")

	// ErrUnknownCollection is returned for a collection the store does not serve.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrForbiddenFilter is returned when a query filters on password.
	ErrForbiddenFilter = errors.New("filtering on password is not allowed")

	// ErrInvalidCredentials is returned by Authenticate on any mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InvalidError describes a record the store refuses to write.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string { return e.Reason }

func invalid(reason string) error { return &InvalidError{Reason: reason} }

// IsInvalid reports whether err is an InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}

// documentValidationFailure is the server code for a write rejected by a
// collection's $jsonSchema validator.
const documentValidationFailure = 121

func isSchemaViolation(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == documentValidationFailure {
				return true
			}
		}
	}
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == documentValidationFailure
}
