package ai

import "errors"

var (
	// ErrMalformedOutput indicates the model returned structured output that
	// does not conform to the required JSON shape.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("empty model response")
)
