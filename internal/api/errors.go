package api

import "errors"

// Common errors for API operations
var (
	ErrLauncherNotRegistered = errors.New("launcher handler not registered")
)
