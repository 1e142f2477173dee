package cli

import (
	"errors"
	"fmt"

	"todo-cli/internal/todo"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// noticeError turns an error-kind notice into a command failure. The user-facing message comes
// first; the underlying cause is appended for scripts.
type noticeError struct {
	notice todo.Notice
}

func (e noticeError) Error() string {
	if e.notice.Err != nil {
		return fmt.Sprintf("%s (%v)", e.notice.Message, e.notice.Err)
	}
	return e.notice.Message
}

func (e noticeError) Unwrap() error { return e.notice.Err }

type confirmRequiredError struct {
	id     string
	reason string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("refusing to delete %s without --yes: %s", e.id, e.reason)
}

// printedError marks an error writeErr already showed on stderr.
type printedError struct {
	err error
}

func (e printedError) Error() string { return e.err.Error() }

func (e printedError) Unwrap() error { return e.err }

// Printed reports whether a command already wrote err to stderr. Errors cobra raises itself,
// such as a wrong argument count, are not printed yet.
func Printed(err error) bool {
	var p printedError
	return errors.As(err, &p)
}
