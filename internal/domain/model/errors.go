package model

import "errors"

// Sentinel kinds for record decoding.
var (
	ErrMalformedRecord = errors.New("malformed planet record")
	ErrInvalidField    = errors.New("invalid field type")
)
