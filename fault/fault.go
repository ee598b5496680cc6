package fault

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUniqueViolation = errors.New("unique violation")
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Credentials
	Unauthenticated
	Forbidden
	Authorization
	Conflict
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "ValidationError"
	case Credentials, Unauthenticated, Forbidden:
		return "AuthError"
	case Authorization:
		return "AuthorizationError"
	case Conflict:
		return "ConflictError"
	case NotFound:
		return "NotFoundError"
	default:
		return "InternalError"
	}
}

// Fault is a classified error. Message is safe to show to API clients,
// Details lists individual violations for Validation faults.
type Fault struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Fault) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (e *Fault) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) error {
	return &Fault{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Fault{Kind: kind, Message: msg, Err: err}
}

// NewValidation creates a validation fault carrying every violation found.
func NewValidation(msg string, details ...string) error {
	return &Fault{Kind: Validation, Message: msg, Details: details}
}

// KindOf returns the kind of the outermost Fault in err's chain,
// Internal when there is none.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}
