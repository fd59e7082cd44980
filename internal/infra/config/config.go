package config

import (
	"errors"
	"fmt"
	"os"
	"strings" // For LogLevel normalization
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/notification"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile             = "net_reminder.yaml"
	DefaultLogFile                = "net_reminder.log"
	DefaultTemplateFile           = "net_reminder.html"
	DefaultMissingTemplateFile    = "net_reminder_missing.html"
	DefaultSubjectTemplate        = "{0} Net for {1}"
	DefaultMissingSubjectTemplate = "No Net Control assignment found for {0}"
	DefaultLogRotation            = "@weekly"
	DefaultLogMaxBackups          = 4
	DefaultRunTimeout             = 2 * time.Minute
)

// ErrMissingKey is wrapped by Error when a required key has no value.
var ErrMissingKey = errors.New("required key is not set")

// Error is a configuration failure. It is always fatal and is reported
// before any notice is composed.
type Error struct {
	Key string // Empty when the failure is not tied to one key
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TelegramConfig enables the optional Telegram mirror.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// SlackConfig enables the optional Slack mirror.
type SlackConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

// AppConfig holds all configuration for a run. It is built once by Load and
// never modified afterwards.
type AppConfig struct {
	ScheduleExcelFile   string `yaml:"schedule_excel_file"`
	ScheduleSheetName   string `yaml:"schedule_sheet_name"`
	ScheduleDatabaseURL string `yaml:"schedule_database_url"`

	RosterExcelFile   string `yaml:"roster_excel_file"`
	RosterSheetName   string `yaml:"roster_sheet_name"`
	EmeritusSheetName string `yaml:"emeritus_sheet_name"`
	RosterDatabaseURL string `yaml:"roster_database_url"`

	SMTPServer   string `yaml:"smtp_server"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPAuthUser string `yaml:"smtp_auth_user"`
	SMTPAuthPass string `yaml:"smtp_auth_pass"`
	EmailFrom    string `yaml:"email_from"`
	EmailReplyTo string `yaml:"email_reply_to"`

	SwitchNotify1Name     string `yaml:"switch_notify1_name"`
	SwitchNotify1Email    string `yaml:"switch_notify1_email"`
	SwitchNotify2Name     string `yaml:"switch_notify2_name"`
	SwitchNotify2Email    string `yaml:"switch_notify2_email"`
	ExcelMaintainerName   string `yaml:"excel_maintainer_name"`
	ExcelMaintainerEmail  string `yaml:"excel_maintainer_email"`
	ScriptMaintainerName  string `yaml:"script_maintainer_name"`
	ScriptMaintainerEmail string `yaml:"script_maintainer_email"`

	EmailConfig            string `yaml:"email_config"`
	MissingEmailConfig     string `yaml:"missing_email_config"`
	EmailSubjectTemplate   string `yaml:"email_subject_template"`
	MissingSubjectTemplate string `yaml:"missing_subject_template"`
	Logo                   string `yaml:"logo"`

	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	Environment   string `yaml:"environment"`
	LogRotation   string `yaml:"log_rotation"` // cron expression for the rotation boundary
	LogMaxBackups int    `yaml:"log_max_backups"`
	RunTimeoutRaw string `yaml:"run_timeout"`

	Telegram TelegramConfig `yaml:"telegram"`
	Slack    SlackConfig    `yaml:"slack"`

	RunTimeout time.Duration `yaml:"-"`
}

// Overrides are values given on the command line. Non-empty fields win over
// the configuration file.
type Overrides struct {
	TemplateFile        string
	MissingTemplateFile string
	LogFile             string
	SubjectTemplate     string
}

// Load reads the YAML configuration file, applies environment and command line
// overrides, fills defaults and validates required keys.
func Load(path string, o Overrides) (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("read %s: %w", path, err)}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyOverrides(o)
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a YAML payload without applying defaults or validation.
func Parse(data []byte) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode yaml: %w", err)}
	}
	return cfg, nil
}

// Secrets may be kept out of the YAML file.
func (c *AppConfig) applyEnv() {
	setFromEnv(&c.SMTPAuthPass, "NET_REMINDER_SMTP_AUTH_PASS")
	setFromEnv(&c.SMTPAuthUser, "NET_REMINDER_SMTP_AUTH_USER")
	setFromEnv(&c.Telegram.Token, "NET_REMINDER_TELEGRAM_TOKEN")
	setFromEnv(&c.Slack.Token, "NET_REMINDER_SLACK_TOKEN")
	setFromEnv(&c.ScheduleDatabaseURL, "NET_REMINDER_DATABASE_URL")
	setFromEnv(&c.RosterDatabaseURL, "NET_REMINDER_DATABASE_URL")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
	setFromEnv(&c.Environment, "ENVIRONMENT")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *AppConfig) applyOverrides(o Overrides) {
	if o.TemplateFile != "" {
		c.EmailConfig = o.TemplateFile
	}
	if o.MissingTemplateFile != "" {
		c.MissingEmailConfig = o.MissingTemplateFile
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.SubjectTemplate != "" {
		c.EmailSubjectTemplate = o.SubjectTemplate
	}
}

func (c *AppConfig) applyDefaults() error {
	if c.EmailConfig == "" {
		c.EmailConfig = DefaultTemplateFile
	}
	if c.MissingEmailConfig == "" {
		c.MissingEmailConfig = DefaultMissingTemplateFile
	}
	if c.EmailSubjectTemplate == "" {
		c.EmailSubjectTemplate = DefaultSubjectTemplate
	}
	if c.MissingSubjectTemplate == "" {
		c.MissingSubjectTemplate = DefaultMissingSubjectTemplate
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "info" // Default log level
	}
	c.Environment = strings.ToLower(c.Environment)
	if c.Environment == "" {
		c.Environment = "development" // Default environment
	}
	if c.LogRotation == "" {
		c.LogRotation = DefaultLogRotation
	}
	if c.LogMaxBackups <= 0 {
		c.LogMaxBackups = DefaultLogMaxBackups
	}

	c.RunTimeout = DefaultRunTimeout
	if c.RunTimeoutRaw != "" {
		d, err := time.ParseDuration(c.RunTimeoutRaw)
		if err != nil {
			return &Error{Key: "run_timeout", Err: fmt.Errorf("invalid duration: %w", err)}
		}
		c.RunTimeout = d
	}
	return nil
}

// Validate checks that every key the run depends on has a value.
func (c *AppConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"smtp_server", c.SMTPServer},
		{"smtp_auth_user", c.SMTPAuthUser},
		{"smtp_auth_pass", c.SMTPAuthPass},
		{"email_from", c.EmailFrom},
		{"switch_notify1_name", c.SwitchNotify1Name},
		{"switch_notify1_email", c.SwitchNotify1Email},
		{"switch_notify2_name", c.SwitchNotify2Name},
		{"switch_notify2_email", c.SwitchNotify2Email},
		{"excel_maintainer_name", c.ExcelMaintainerName},
		{"excel_maintainer_email", c.ExcelMaintainerEmail},
		{"script_maintainer_name", c.ScriptMaintainerName},
		{"script_maintainer_email", c.ScriptMaintainerEmail},
	}
	if c.ScheduleDatabaseURL == "" {
		required = append(required,
			struct{ key, value string }{"schedule_excel_file", c.ScheduleExcelFile},
			struct{ key, value string }{"schedule_sheet_name", c.ScheduleSheetName},
		)
	}
	if c.RosterDatabaseURL == "" {
		required = append(required,
			struct{ key, value string }{"roster_excel_file", c.RosterExcelFile},
			struct{ key, value string }{"roster_sheet_name", c.RosterSheetName},
			struct{ key, value string }{"emeritus_sheet_name", c.EmeritusSheetName},
		)
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &Error{Key: r.key, Err: ErrMissingKey}
		}
	}

	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return &Error{Key: "smtp_port", Err: fmt.Errorf("invalid port %d", c.SMTPPort)}
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return &Error{Key: "telegram.chat_id", Err: ErrMissingKey}
	}
	if c.Slack.Token != "" && c.Slack.ChannelID == "" {
		return &Error{Key: "slack.channel_id", Err: ErrMissingKey}
	}
	return nil
}

// Contacts returns the people printed in every notice.
func (c *AppConfig) Contacts() notification.Contacts {
	return notification.Contacts{
		SwitchNotify1:    notification.Contact{Name: c.SwitchNotify1Name, Email: c.SwitchNotify1Email},
		SwitchNotify2:    notification.Contact{Name: c.SwitchNotify2Name, Email: c.SwitchNotify2Email},
		ExcelMaintainer:  notification.Contact{Name: c.ExcelMaintainerName, Email: c.ExcelMaintainerEmail},
		ScriptMaintainer: notification.Contact{Name: c.ScriptMaintainerName, Email: c.ScriptMaintainerEmail},
	}
}
