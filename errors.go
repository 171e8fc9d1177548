package ragcheck

import "errors"

var (
	// ErrEmptyQuery is returned when a request carries no user query.
	ErrEmptyQuery = errors.New("ragcheck: user query is empty")

	// ErrEmptyResponse is returned when a request carries no AI response.
	ErrEmptyResponse = errors.New("ragcheck: ai response is empty")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("ragcheck: invalid configuration")
)
