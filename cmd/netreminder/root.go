package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hamiltra/net-reminder/internal/app"
	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/hamiltra/net-reminder/internal/domain/schedule"
	"github.com/hamiltra/net-reminder/internal/infra/config"
	"github.com/hamiltra/net-reminder/internal/infra/logger"
	"github.com/hamiltra/net-reminder/internal/infra/mailer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configFile          string
	templateFile        string
	missingTemplateFile string
	logFile             string
	now                 string
	subject             string
	dryRun              bool
	testEmail           string
}

func newRootCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "netreminder",
		Short: "Email the Net Control assignments for the current and next week",
		Long: `netreminder reads the Net Control schedule, finds the assignments for the
current and the next week and emails them to the club roster. When a week has
no assignment the schedule maintainers are alerted instead.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configFile, "config", "c", config.DefaultConfigFile, "configuration file")
	f.StringVarP(&o.templateFile, "template", "e", "", "HTML template for the assignment notice")
	f.StringVarP(&o.missingTemplateFile, "missing-template", "m", "", "HTML template for the missing-assignment alert")
	f.StringVarP(&o.logFile, "log", "l", "", fmt.Sprintf("log file, %q for stderr (default %q)", logger.StderrLogFile, config.DefaultLogFile))
	f.StringVarP(&o.now, "now", "n", "", "reference date mm/dd/yyyy (default today)")
	f.StringVarP(&o.subject, "subject", "s", "", "subject format, {0} = net type, {1} = net date")
	f.BoolVarP(&o.dryRun, "dry-run", "t", false, "print the notice instead of sending it")
	f.BoolVar(&o.dryRun, "test", false, "alias for --dry-run")
	_ = f.MarkHidden("test")
	f.StringVarP(&o.testEmail, "test-email", "q", "", "send only to this address")

	cmd.AddCommand(newMigrateCommand())
	return cmd
}

// Leading zeros are optional in --now.
var referenceLayouts = []string{schedule.DateLayout, "1/2/2006"}

// parseReference returns the run's reference date. An empty value means today.
func parseReference(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return schedule.CalendarDate(now()), nil
	}
	var err error
	for _, layout := range referenceLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, time.Local); err == nil {
			return schedule.CalendarDate(t), nil
		}
	}
	return time.Time{}, &config.Error{Key: "now", Err: fmt.Errorf("expected mm/dd/yyyy: %w", err)}
}

// logEarlyFailure records a failure that happened before the configured
// logger existed, in the log file named by --log or the default one.
func logEarlyFailure(o *options, err error) {
	path := o.logFile
	if path == "" {
		path = config.DefaultLogFile
	}
	log, closer, lerr := logger.New(&config.AppConfig{
		LogFile:       path,
		LogLevel:      "info",
		LogRotation:   config.DefaultLogRotation,
		LogMaxBackups: config.DefaultLogMaxBackups,
	})
	if lerr != nil {
		return
	}
	defer closer.Close()
	log.WithError(err).Error("Run aborted before the configuration was loaded")
}

func run(ctx context.Context, o *options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reference, err := parseReference(o.now, time.Now)
	if err != nil {
		logEarlyFailure(o, err)
		return err
	}

	cfg, err := config.Load(o.configFile, config.Overrides{
		TemplateFile:        o.templateFile,
		MissingTemplateFile: o.missingTemplateFile,
		LogFile:             o.logFile,
		SubjectTemplate:     o.subject,
	})
	if err != nil {
		logEarlyFailure(o, err)
		return err
	}

	log, closer, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer closer.Close()

	log.Info("Started")
	defer log.Info("Finished")

	mode := notification.ResolveMode(o.dryRun, o.testEmail)
	log.Infof("Mode: %s, reference date: %s, config: %s", mode, reference.Format(schedule.DateLayout), o.configFile)

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	svc, cleanup, err := buildService(ctx, cfg, o.testEmail, out, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize")
		return err
	}
	defer cleanup()

	if _, err := svc.Run(ctx, reference, mode); err != nil {
		log.WithError(err).Error("Run failed")
		return err
	}
	return nil
}

func buildService(
	ctx context.Context,
	cfg *config.AppConfig,
	testEmail string,
	out io.Writer,
	log logrus.FieldLogger,
) (*app.ReminderService, func(), error) {
	schedules, members, cleanup, err := openSources(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	mirrors, err := chatMirrors(cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	smtp := mailer.NewSMTPTransport(mailer.Settings{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPAuthUser,
		Password: cfg.SMTPAuthPass,
		From:     cfg.EmailFrom,
		ReplyTo:  cfg.EmailReplyTo,
	}, log)

	composer := app.NewComposer(app.ComposerSettings{
		TemplateFile:         cfg.EmailConfig,
		MissingTemplateFile:  cfg.MissingEmailConfig,
		SubjectFormat:        cfg.EmailSubjectTemplate,
		MissingSubjectFormat: cfg.MissingSubjectTemplate,
		LogoFile:             cfg.Logo,
		Contacts:             cfg.Contacts(),
	}, log)
	dispatcher := app.NewDispatcher(smtp, mirrors, out, testEmail, log)

	return app.NewReminderService(schedules, members, composer, dispatcher, cfg.Contacts(), log), cleanup, nil
}
