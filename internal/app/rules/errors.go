package rules

import "errors"

var (
	ErrRecordNotFound = errors.New("no record found for key")
	ErrEventRequired  = errors.New("event is required")
)
