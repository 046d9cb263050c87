package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContext is returned when a consumer is used without a binding context.
	ErrNoContext = errors.New("binding: no context; attach a store with a Provider first")

	// ErrNilSelector is returned when Evaluate is called without a selector.
	ErrNilSelector = errors.New("binding: selector is nil")

	// ErrNilStore is returned by Provider.Attach when given a nil store.
	ErrNilStore = errors.New("binding: store is nil")
)

// SelectorError is returned by Evaluate when the selector fails while an
// earlier failure recorded by the notification path is still pending. The
// message carries both diagnostics.
type SelectorError struct {
	Err      error
	Previous error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("%v\nthe error may be related to the previous selector run:\n%v", e.Err, e.Previous)
}

// Unwrap exposes both the current and the previous failure to errors.Is/As.
func (e *SelectorError) Unwrap() []error {
	return []error{e.Err, e.Previous}
}
