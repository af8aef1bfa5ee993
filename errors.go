package havoc

import "errors"

var ErrUnsupportedInstruction = WrapUnambiguousError(errors.New("havoc: unsupported instruction"))

// WrapUnambiguousError marks an error as definitely-did-not-happen. The
// executor treats any other error from a client as ambiguous and replaces
// the thread's process identity before reusing the thread.
func WrapUnambiguousError(err error) error {
	return &unambiguousError{err}
}

func IsUnambiguousError(err error) bool {
	var ue *unambiguousError
	return errors.As(err, &ue)
}

type unambiguousError struct {
	wrapped error
}

func (e *unambiguousError) Error() string {
	return e.wrapped.Error()
}

func (e *unambiguousError) Unwrap() error {
	return e.wrapped
}
