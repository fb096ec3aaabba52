package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Library errors
	ErrTrackNotFound  = fmt.Errorf("track not found")
	ErrCrateNotFound  = fmt.Errorf("crate not found")
	ErrDuplicateTrack = fmt.Errorf("track already in library")

	// Artwork errors
	ErrArtworkNotFound     = fmt.Errorf("artwork not found")
	ErrProviderUnavailable = fmt.Errorf("artwork provider unavailable")

	// Engine errors
	ErrEngineRunning = fmt.Errorf("engine already running")
	ErrEngineStopped = fmt.Errorf("engine not running")
	ErrStageNotFound = fmt.Errorf("stage not found")
	ErrUnknownParam  = fmt.Errorf("unknown parameter")

	// Choreography errors
	ErrInvalidChoreo = fmt.Errorf("invalid choreography")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
