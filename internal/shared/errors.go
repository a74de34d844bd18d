package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrNoDirectories = fmt.Errorf("no library directories configured")
	ErrUnknownDir    = fmt.Errorf("directory not in configuration")
	ErrDuplicateDir  = fmt.Errorf("directory already configured")

	// Index errors
	ErrEmptyIndex    = fmt.Errorf("track index is empty")
	ErrIndexNotFound = fmt.Errorf("no track index found, run 'trackfort scan' first")

	// Playlist errors
	ErrIncompletePlaylist = fmt.Errorf("playlist did not fully resolve")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
