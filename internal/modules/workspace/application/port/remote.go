package port

import "errors"

var (
	// ErrRemoteForbidden indicates the REST API rejected the caller's credentials.
	ErrRemoteForbidden = errors.New("remote request forbidden")
	// ErrRemoteNotFound indicates the requested remote resource does not exist.
	ErrRemoteNotFound = errors.New("remote resource not found")
	// ErrShortlistRejected is returned when the shortlist store answers a mutation
	// without a success status.
	ErrShortlistRejected = errors.New("shortlist mutation rejected")
)
