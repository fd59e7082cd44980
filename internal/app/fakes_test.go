package app

import (
	"context"
	"strings"
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/hamiltra/net-reminder/internal/domain/roster"
	"github.com/hamiltra/net-reminder/internal/domain/schedule"
	"github.com/sirupsen/logrus"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type sentNotice struct {
	notice     *notification.Notice
	recipients []string
}

type fakeTransport struct {
	name string
	err  error
	sent []sentNotice
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(_ context.Context, n *notification.Notice, recipients []string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNotice{notice: n, recipients: recipients})
	return nil
}

type fakeSchedule struct {
	rows  []schedule.Row
	err   error
	calls int
}

func (f *fakeSchedule) ListRows(context.Context) ([]schedule.Row, error) {
	f.calls++
	return f.rows, f.err
}

type fakeRoster struct {
	members []roster.Member
	err     error
	calls   int
}

func (f *fakeRoster) ListMembers(context.Context) ([]roster.Member, error) {
	f.calls++
	return f.members, f.err
}

func testContacts() notification.Contacts {
	return notification.Contacts{
		SwitchNotify1:    notification.Contact{Name: "Sam", Email: "sam@example.com"},
		SwitchNotify2:    notification.Contact{Name: "Pat", Email: "pat@example.com"},
		ExcelMaintainer:  notification.Contact{Name: "Erin", Email: "erin@example.com"},
		ScriptMaintainer: notification.Contact{Name: "Sid", Email: "sid@example.com"},
	}
}

func testSettings() ComposerSettings {
	return ComposerSettings{
		TemplateFile:         "net_reminder.html",
		MissingTemplateFile:  "net_reminder_missing.html",
		SubjectFormat:        "{0} Net for {1}",
		MissingSubjectFormat: "No Net Control assignment found for {0}",
		Contacts:             testContacts(),
	}
}

func hasEntry(entries []*logrus.Entry, level logrus.Level, substr string) bool {
	for _, e := range entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
