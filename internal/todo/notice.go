package todo

import (
	"errors"
	"fmt"
)

// Kind is a notice severity, used only for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notice struct {
	Message string
	Kind    Kind
	// Err is the failure behind an error notice, kept for logs. Never shown to the user.
	Err error
}

func (n Notice) String() string { return fmt.Sprintf("%s: %s", n.Kind, n.Message) }

func successNotice(msg string) *Notice {
	return &Notice{Message: msg, Kind: KindSuccess}
}

func errorNotice(msg string, err error) *Notice {
	return &Notice{Message: msg, Kind: KindError, Err: err}
}

// ValidationNotice maps a Create validation error to the notice the user sees.
func ValidationNotice(err error) Notice {
	switch {
	case errors.Is(err, ErrEmptyText):
		return Notice{Message: "Please enter a task!", Kind: KindWarning, Err: err}
	case errors.Is(err, ErrTextTooLong):
		return Notice{Message: fmt.Sprintf("Task is too long! Maximum %d characters.", MaxTextLen), Kind: KindError, Err: err}
	default:
		return Notice{Message: err.Error(), Kind: KindError, Err: err}
	}
}
