package errors

import "errors"

var (
	ErrMissingFields = errors.New("missing required appointment fields")

	ErrUpstreamFetch = errors.New("failed to fetch busy intervals from calendar")

	ErrUpstreamWrite = errors.New("failed to insert calendar event")
)
