// internal/app/dispatcher.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hamiltra/net-reminder/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoRecipients   = errors.New("no recipients for notice")
	ErrNoTestAddress  = errors.New("test mode requires a test email address")
	ErrUnknownRunMode = errors.New("unknown run mode")
)

// Dispatcher hands a composed notice to the email transport and the optional
// chat mirrors, or prints it in a dry run.
type Dispatcher struct {
	mailer    notification.Transport
	mirrors   []notification.Transport
	sink      io.Writer
	testEmail string
	logger    logrus.FieldLogger
}

func NewDispatcher(
	mailer notification.Transport,
	mirrors []notification.Transport,
	sink io.Writer, // Receives the body in dry runs
	testEmail string,
	logger logrus.FieldLogger,
) *Dispatcher {
	return &Dispatcher{
		mailer:    mailer,
		mirrors:   mirrors,
		sink:      sink,
		testEmail: testEmail,
		logger:    logger,
	}
}

// Dispatch delivers notice according to mode. Any transport failure is
// returned as a *notification.TransportError and is never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, notice *notification.Notice, recipients []string, mode notification.Mode) error {
	d.logger.Infof("Email Distribution List: %s", strings.Join(recipients, ","))

	switch mode {
	case notification.ModeDryRun:
		d.logger.Info("Dry run: printing the notice instead of sending it")
		if _, err := fmt.Fprintln(d.sink, notice.Body); err != nil {
			return fmt.Errorf("failed to write dry-run output: %w", err)
		}
		return nil

	case notification.ModeTest:
		if d.testEmail == "" {
			return ErrNoTestAddress
		}
		d.logger.Infof("Test mode: sending to %s instead of %d computed recipients", d.testEmail, len(recipients))
		if err := d.send(ctx, d.mailer, notice, []string{d.testEmail}); err != nil {
			return err
		}
		if len(d.mirrors) > 0 {
			d.logger.Infof("Test mode: skipping %d chat mirror(s)", len(d.mirrors))
		}
		return nil

	case notification.ModeLive:
		if len(recipients) == 0 {
			return fmt.Errorf("%w: %s", ErrNoRecipients, notice.Kind)
		}
		if err := d.send(ctx, d.mailer, notice, recipients); err != nil {
			return err
		}
		if notice.Kind.Missing() {
			if len(d.mirrors) > 0 {
				d.logger.Infof("%s alert goes to maintainers only: skipping %d chat mirror(s)", notice.Kind, len(d.mirrors))
			}
			return nil
		}
		for _, m := range d.mirrors {
			if err := d.send(ctx, m, notice, recipients); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownRunMode, mode)
	}
}

func (d *Dispatcher) send(ctx context.Context, t notification.Transport, notice *notification.Notice, recipients []string) error {
	if err := t.Send(ctx, notice, recipients); err != nil {
		d.logger.WithError(err).Errorf("Failed to send %s notice via %s", notice.Kind, t.Name())
		return &notification.TransportError{Transport: t.Name(), Err: err}
	}
	d.logger.Infof("Sent %s notice via %s", notice.Kind, t.Name())
	return nil
}
