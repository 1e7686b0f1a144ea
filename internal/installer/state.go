package installer

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/faas-installer/internal/getter"
)

// State is a step of an install.
type State int

// Install steps in the order they run. Failed is reachable from every
// non-terminal state.
const (
	Idle State = iota
	ResolvingPlatform
	LocatingRelease
	Downloading
	FixingPermissions
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ResolvingPlatform:
		return "resolving platform"
	case LocatingRelease:
		return "locating release"
	case Downloading:
		return "downloading"
	case FixingPermissions:
		return "fixing permissions"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

var (
	// ErrFilesystem is returned when the destination cannot be prepared or
	// its permissions cannot be set.
	ErrFilesystem = errors.New("filesystem error")
	// ErrInvalidTransition is returned when a step runs out of order.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrInstallInProgress is returned when Install is called while another
	// call on the same Installer is still running.
	ErrInstallInProgress = errors.New("install already in progress")
)

// StageError reports the step an install failed in. Its message is what the
// user sees; Unwrap exposes the cause for errors.Is. Filesystem faults while
// locating or downloading already name their path and are shown as is.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case LocatingRelease, Downloading:
		if isFilesystem(e.Err) {
			return e.Err.Error()
		}

		return "Download failed! " + e.Err.Error()
	case FixingPermissions:
		return "Setting permissions failed! " + e.Err.Error()
	default:
		return e.Err.Error()
	}
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func isFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem) || errors.Is(err, getter.ErrFilesystem)
}
