// internal/domain/notification/transport.go
package notification

import (
	"context"
	"fmt"
)

// Transport delivers a notice. Email transports address recipients directly;
// chat transports post to their configured channel and ignore recipients.
// This keeps the application logic decoupled from the delivery libraries.
type Transport interface {
	Name() string
	Send(ctx context.Context, notice *Notice, recipients []string) error
}

// TransportError marks a delivery failure. It is always fatal for the run.
type TransportError struct {
	Transport string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Transport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
