package session

import "errors"

var (
	ErrSessionNotFound  = errors.New("planning session not found")
	ErrSessionFinalized = errors.New("planning session already finalized")
)
