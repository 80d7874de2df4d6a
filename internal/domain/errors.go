package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidIntent   = errors.New("invalid list intent")
)
