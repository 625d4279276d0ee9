package errcodes

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotAGitRepo     = errors.New("not a git repository")
	ErrConfigMissing   = errors.New("configuration missing, run 'bb auth setup'")
	ErrAborted         = errors.New("aborted by user")
	ErrMissingTarget   = NewValidationError("target branch is missing")
	ErrMissingAction   = NewValidationError("review action cannot be none")
	ErrMissingID       = NewValidationError("pull request id is missing")
	ErrSameBranch      = NewValidationError("source & target cannot be the same")
	ErrDetachedHead    = errors.New("HEAD is detached, checkout a branch first")
	ErrNoRemote        = errors.New("repository has no remote configured")
	ErrUnknownRole     = NewValidationError("role must be one of author, reviewer, current")
	ErrInvalidPRNumber = NewValidationError("pull request id must be a positive number")
)

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// HTTPError carries the status code and the server provided message, if any.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

type RebaseConflictError struct {
	Target string
	Output string
}

func (e *RebaseConflictError) Error() string {
	return fmt.Sprintf("rebase onto '%s' failed, resolve conflicts and retry", e.Target)
}

// StaleVersionError means the server rejected the version we read.
type StaleVersionError struct {
	ID      int
	Version int
}

func (e *StaleVersionError) Error() string {
	return fmt.Sprintf(
		"pull request #%d changed since version %d was read, re-run the command to retry",
		e.ID,
		e.Version,
	)
}

type MergeBlockedError struct {
	ID         int
	Conflicted bool
	Reasons    []string
}

func (e *MergeBlockedError) Error() string {
	msg := fmt.Sprintf("pull request #%d cannot be merged", e.ID)
	if e.Conflicted {
		msg += " (conflicted)"
	}
	if len(e.Reasons) > 0 {
		msg += ": " + strings.Join(e.Reasons, "; ")
	}

	return msg
}

type ConfigInvalidError struct {
	Reason string
}

func (e *ConfigInvalidError) Error() string {
	return "invalid configuration: " + e.Reason
}

// DeleteFailedError summarizes the ids a bulk delete could not remove.
type DeleteFailedError struct {
	Failed []int
}

func (e *DeleteFailedError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for _, id := range e.Failed {
		ids = append(ids, fmt.Sprintf("#%d", id))
	}

	return "failed to delete " + strings.Join(ids, ", ")
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
