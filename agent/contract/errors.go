package contract

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownTool   = errors.New("tool not found")
	ErrToolExecution = errors.New("tool execution failed")
	ErrGateway       = errors.New("language model gateway failed")
	ErrPersistence   = errors.New("persistence failed")
	ErrValidation    = errors.New("validation failed")
)
