package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEvaluationAborted = errors.New("evaluation aborted")
)
