package domain

import "errors"

var (
	// ErrNotFound means the token does not resolve to any request.
	ErrNotFound = errors.New("request not found")
	// ErrExpired means the request's effective state is expired, whether or
	// not the stored status field has caught up yet.
	ErrExpired = errors.New("request has expired")
	// ErrNotAvailable means the request is completed and no longer actionable.
	ErrNotAvailable = errors.New("request is no longer available")
	// ErrInvalidInput means a required identifier is missing or an action
	// value is not recognized.
	ErrInvalidInput = errors.New("invalid input")
)
