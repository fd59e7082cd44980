// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/hamiltra/net-reminder/internal/domain/roster"
	"github.com/hamiltra/net-reminder/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// RunResult describes what a run decided and sent.
type RunResult struct {
	Outcome    notification.Outcome
	Notice     *notification.Notice
	Recipients []string
}

// ReminderService performs one reminder run: load the schedule, pick the
// current and next assignments, compose the notice and dispatch it.
type ReminderService struct {
	schedules  schedule.Source
	members    roster.Source
	composer   *Composer
	dispatcher *Dispatcher
	contacts   notification.Contacts
	logger     logrus.FieldLogger
}

func NewReminderService(
	schedules schedule.Source,
	members roster.Source,
	composer *Composer,
	dispatcher *Dispatcher,
	contacts notification.Contacts,
	logger logrus.FieldLogger,
) *ReminderService {
	return &ReminderService{
		schedules:  schedules,
		members:    members,
		composer:   composer,
		dispatcher: dispatcher,
		contacts:   contacts,
		logger:     logger,
	}
}

// Run executes the reminder for reference. A missing assignment is not an
// error: the maintainers are alerted and the run succeeds.
func (s *ReminderService) Run(ctx context.Context, reference time.Time, mode notification.Mode) (*RunResult, error) {
	current, next := schedule.CurrentWindow(reference), schedule.NextWindow(reference)
	s.logger.Infof("Current Date: %s, Future Date 1wk: %s, Future Date 2wk: %s",
		current.Start.Format(schedule.DateLayout), next.Start.Format(schedule.DateLayout), next.End.Format(schedule.DateLayout))

	// 1. Load and select
	rows, err := s.schedules.ListRows(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load schedule")
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	s.logger.Infof("Loaded %d schedule rows", len(rows))

	curSel, nextSel := schedule.Select(rows, reference)
	s.logSelection("current", curSel)
	s.logSelection("next", nextSel)

	// 2. Resolve
	outcome := notification.Resolve(curSel, nextSel)
	s.logger.Infof("Outcome: %s", outcome.Kind)

	// 3. Recipients
	var recipients []string
	if outcome.Missing() {
		s.logger.Warnf("No Net Control assignment found for window starting %s, alerting maintainers only",
			outcome.MissingDate.Format(schedule.DateLayout))
		recipients = s.contacts.Maintainers()
	} else {
		s.logger.Infof("Net Date: %s, Primary: %s, Backup: %s",
			outcome.Current.FormattedDate(), outcome.Current.Primary, outcome.Current.Backup)
		s.logger.Infof("Net Date: %s, Primary: %s, Backup: %s",
			outcome.Next.FormattedDate(), outcome.Next.Primary, outcome.Next.Backup)

		members, err := s.members.ListMembers(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Failed to load roster")
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
		recipients = roster.Addresses(members)
	}

	// 4. Compose
	notice, err := s.composer.Compose(outcome)
	if err != nil {
		s.logger.WithError(err).Errorf("Failed to compose %s notice", outcome.Kind)
		return nil, fmt.Errorf("failed to compose notice: %w", err)
	}

	// 5. Dispatch
	if err := s.dispatcher.Dispatch(ctx, notice, recipients, mode); err != nil {
		return nil, fmt.Errorf("failed to dispatch %s notice: %w", outcome.Kind, err)
	}

	return &RunResult{Outcome: outcome, Notice: notice, Recipients: recipients}, nil
}

func (s *ReminderService) logSelection(label string, sel schedule.Selection) {
	s.logger.Infof("Window %s %s: %d matching row(s)", label, sel.Window, len(sel.Matches))
	for _, r := range sel.Matches {
		s.logger.Debugf("  %s %s primary=%s backup=%s", r.FormattedDate(), r.PeriodType, r.Primary, r.Backup)
	}
	if len(sel.Matches) > 1 {
		s.logger.Warnf("Window %s %s has %d schedule rows, using the first (%s %s); check the schedule for duplicates",
			label, sel.Window, len(sel.Matches), sel.Matches[0].FormattedDate(), sel.Matches[0].PeriodType)
	}
}
