package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrOffline      = errors.New("offline")
)

// StatusNoResponse marks failures that never produced an HTTP status:
// offline, transport errors, open circuit.
const StatusNoResponse = 0

// APIError is the normalized shape every data-access failure is reduced to
// before it leaves the core. Retryable tells the caller whether presenting a
// retry affordance makes sense.
type APIError struct {
	StatusCode int
	Message    string
	Retryable  bool
}

func (e *APIError) Error() string {
	if e.StatusCode == StatusNoResponse {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// AsAPIError unwraps err to its APIError, when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type IntegrityKind string

const (
	IntegrityMissingTeam     IntegrityKind = "missing_team"
	IntegrityMalformedLineup IntegrityKind = "malformed_lineup"
)

// DataIntegrityError reports a provider payload that violates the data
// contract (wrong team, lineup without exactly eleven starters). It is kept
// distinct from APIError: retrying cannot fix bad data.
type DataIntegrityError struct {
	Kind    IntegrityKind
	Message string
}

func (e *DataIntegrityError) Error() string {
	return e.Message
}

// AsDataIntegrityError unwraps err to its DataIntegrityError, when it
// carries one.
func AsDataIntegrityError(err error) (*DataIntegrityError, bool) {
	var integrityErr *DataIntegrityError
	if errors.As(err, &integrityErr) {
		return integrityErr, true
	}
	return nil, false
}
