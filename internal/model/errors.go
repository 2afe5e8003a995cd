package model

import "errors"

// Common errors used across the application
var (
	// Resource loading errors
	ErrUnresolvedHandle = errors.New("no catalog entry for handle")
	ErrResourceNotFound = errors.New("resource not found")
	ErrBundleTransfer   = errors.New("bundle transfer failed")
	ErrEmptyExtraction  = errors.New("bundle yielded no assets of expected type")

	// Authentication errors
	ErrCredentialMissing  = errors.New("user doesn't exist")
	ErrCredentialMismatch = errors.New("incorrect password")
	ErrUserDataMissing    = errors.New("user document not found")

	// Library errors
	ErrIndexOutOfRange = errors.New("catalog index out of range")
	ErrLibraryNotReady = errors.New("library catalog not ready")

	// Playback errors
	ErrNoMediaBound = errors.New("no media item bound to the session")

	// Tour errors
	ErrSceneNotBuilt        = errors.New("scene has not been built")
	ErrTransitionInProgress = errors.New("teleport transition in progress")
)
