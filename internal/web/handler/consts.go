package handler

import fiberlog "github.com/lmsforge/lms-backend/internal/logger/adapter/fiber"

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// LocalsUserID is the fiber locals key holding the authenticated user id.
	LocalsUserID = fiberlog.LocalsUserID

	// ErrNilEnvFatalLogMsg is used if the app or handler environment is nil.
	ErrNilEnvFatalLogMsg = "app or handler env is nil"

	// MsgInternalError is sent to clients for unclassified failures.
	MsgInternalError = "Internal server error"
)
