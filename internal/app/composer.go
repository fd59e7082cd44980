// internal/app/composer.go
package app

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/hamiltra/net-reminder/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const (
	defaultNoticeTemplate  = "templates/notice.html"
	defaultMissingTemplate = "templates/missing.html"
)

// ComposerSettings are the configured template files, subject formats and
// contacts used to render notices.
type ComposerSettings struct {
	TemplateFile         string
	MissingTemplateFile  string
	SubjectFormat        string // {0} = net type, {1} = net date
	MissingSubjectFormat string // {0} = net date
	LogoFile             string
	Contacts             notification.Contacts
}

// noticeData is the template input. The missing-assignment template only
// uses NetDate and the maintainer contacts.
type noticeData struct {
	NetDate     string
	NetType     string
	Primary     string
	Backup      string
	NextNetDate string
	NextPrimary string
	NextBackup  string

	SwitchNotify1    notification.Contact
	SwitchNotify2    notification.Contact
	ExcelMaintainer  notification.Contact
	ScriptMaintainer notification.Contact

	Logo string // Content-ID of the inline logo, empty when there is none
}

// Composer renders notices from an outcome.
type Composer struct {
	settings ComposerSettings
	logger   logrus.FieldLogger
	readFile func(name string) ([]byte, error)
}

func NewComposer(settings ComposerSettings, logger logrus.FieldLogger) *Composer {
	return &Composer{
		settings: settings,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Compose renders the notice for outcome. An unreadable template file or logo
// is logged and replaced by the built-in template or dropped; only a template
// that fails to parse or execute is an error.
func (c *Composer) Compose(outcome notification.Outcome) (*notification.Notice, error) {
	contacts := c.settings.Contacts
	data := noticeData{
		SwitchNotify1:    contacts.SwitchNotify1,
		SwitchNotify2:    contacts.SwitchNotify2,
		ExcelMaintainer:  contacts.ExcelMaintainer,
		ScriptMaintainer: contacts.ScriptMaintainer,
	}
	notice := &notification.Notice{Kind: outcome.Kind}

	var templateFile, defaultName string
	if outcome.Missing() {
		data.NetDate = outcome.MissingDate.Format(schedule.DateLayout)
		notice.Subject = formatSubject(c.settings.MissingSubjectFormat, data.NetDate)
		notice.Summary = fmt.Sprintf("%s\nPlease update the Net Control schedule (maintainer: %s, %s).",
			notice.Subject, contacts.ExcelMaintainer.Name, contacts.ExcelMaintainer.Email)
		templateFile, defaultName = c.settings.MissingTemplateFile, defaultMissingTemplate
	} else {
		cur, next := outcome.Current, outcome.Next
		data.NetDate = cur.FormattedDate()
		data.NetType = cur.PeriodType
		data.Primary = cur.Primary
		data.Backup = cur.Backup
		data.NextNetDate = next.FormattedDate()
		data.NextPrimary = next.Primary
		data.NextBackup = next.Backup
		notice.Subject = formatSubject(c.settings.SubjectFormat, cur.PeriodType, data.NetDate)
		notice.Summary = fmt.Sprintf("%s\nPrimary Net Control: %s\nBackup Net Control: %s\nHeads up for %s: Primary %s, Backup %s",
			notice.Subject, cur.Primary, cur.Backup, data.NextNetDate, next.Primary, next.Backup)
		templateFile, defaultName = c.settings.TemplateFile, defaultNoticeTemplate
	}

	if logo, ok := c.loadLogo(); ok {
		notice.Attachments = append(notice.Attachments, logo)
		data.Logo = logo.Name
	}

	text, err := c.loadTemplate(templateFile, defaultName)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(filepath.Base(defaultName)).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateFile, err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", templateFile, err)
	}
	notice.Body = body.String()

	c.logger.Infof("Email Subject: %s", notice.Subject)
	return notice, nil
}

// loadTemplate reads the configured template, falling back to the embedded
// default when the file cannot be read.
func (c *Composer) loadTemplate(path, defaultName string) (string, error) {
	if path != "" {
		data, err := c.readFile(path)
		if err == nil {
			return string(data), nil
		}
		c.logger.WithError(err).Warnf("Template %s could not be read, using the built-in default", path)
	}
	data, err := defaultTemplates.ReadFile(defaultName)
	if err != nil {
		return "", fmt.Errorf("failed to read built-in template %s: %w", defaultName, err)
	}
	return string(data), nil
}

func (c *Composer) loadLogo() (notification.Attachment, bool) {
	if c.settings.LogoFile == "" {
		return notification.Attachment{}, false
	}
	data, err := c.readFile(c.settings.LogoFile)
	if err != nil {
		c.logger.WithError(err).Warnf("Logo %s could not be read, sending without it", c.settings.LogoFile)
		return notification.Attachment{}, false
	}
	return notification.Attachment{Name: filepath.Base(c.settings.LogoFile), Data: data}, true
}

// formatSubject substitutes positional placeholders {0}, {1}, ... in format.
func formatSubject(format string, args ...string) string {
	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}
	return strings.NewReplacer(pairs...).Replace(format)
}
