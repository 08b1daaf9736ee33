package errors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error returned by a repository operation
// matches exactly one of these through errors.Is.
var (
	// ErrNotFound indicates a referenced file or object does not exist
	ErrNotFound = errors.New("not found")

	// ErrNoSuchCommit indicates a commit id or prefix matched nothing
	ErrNoSuchCommit = errors.New("no commit with that id exists")

	// ErrNoSuchBranch indicates the named branch does not exist
	ErrNoSuchBranch = errors.New("a branch with that name does not exist")

	// ErrAmbiguousCommit indicates a commit prefix matched more than one commit
	ErrAmbiguousCommit = errors.New("multiple commits with that id exist")

	// ErrAlreadyExists indicates a branch with the given name is already present
	ErrAlreadyExists = errors.New("a branch with that name already exists")

	// ErrInvalidOperation indicates the request is not allowed in the current state
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrWouldOverwriteUntracked guards against clobbering files the repository does not know about
	ErrWouldOverwriteUntracked = errors.New("there is an untracked file in the way; delete it, or add and commit it first")

	// ErrUncommittedChanges indicates the staging area must be empty first
	ErrUncommittedChanges = errors.New("you have uncommitted changes")

	// ErrNotRepository indicates no repository was found
	ErrNotRepository = errors.New("not in an initialized lvc directory")

	// ErrRepositoryExists indicates init was run over an existing repository
	ErrRepositoryExists = errors.New("a version-control system already exists in the current directory")
)

// Kinded errors carry their own message but still match their kind.
var (
	ErrSelfMerge           = newKinded("cannot merge a branch with itself", ErrInvalidOperation)
	ErrCannotDeleteCurrent = newKinded("cannot remove the current branch", ErrInvalidOperation)
	ErrSameBranch          = newKinded("no need to checkout the current branch", ErrInvalidOperation)
	ErrEmptyMessage        = newKinded("please enter a commit message", ErrInvalidOperation)
	ErrNothingStaged       = newKinded("no changes added to the commit", ErrInvalidOperation)
	ErrNothingToRemove     = newKinded("no reason to remove the file", ErrInvalidOperation)
	ErrIncorrectOperands   = newKinded("incorrect operands", ErrInvalidOperation)
	ErrFileNotInCommit     = newKinded("file does not exist in that commit", ErrNotFound)
	ErrNoMatchingCommit    = newKinded("found no commit with that message", ErrNotFound)
)

// KindError is an error with its own message that belongs to a broader kind.
type KindError struct {
	Message string
	Kind    error
}

func newKinded(message string, kind error) *KindError {
	return &KindError{Message: message, Kind: kind}
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return e.Message
}

// Unwrap returns the kind so errors.Is matches both the error and its kind.
func (e *KindError) Unwrap() error {
	return e.Kind
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Kind returns the sentinel kind err belongs to, or nil when err is not
// one of the repository error kinds.
func Kind(err error) error {
	for _, k := range []error{
		ErrNoSuchCommit,
		ErrNoSuchBranch,
		ErrAmbiguousCommit,
		ErrAlreadyExists,
		ErrWouldOverwriteUntracked,
		ErrUncommittedChanges,
		ErrNotRepository,
		ErrRepositoryExists,
		ErrInvalidOperation,
		ErrNotFound,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
