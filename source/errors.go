package source

import "errors"

var (
	// ErrInvalidRepo indicates the repository identifier is not "owner/name".
	ErrInvalidRepo = errors.New("invalid repository identifier")

	// ErrBranchRequired indicates the branch name is missing.
	ErrBranchRequired = errors.New("branch is required")
)
