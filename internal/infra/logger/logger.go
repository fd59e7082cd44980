// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hamiltra/net-reminder/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// StderrLogFile sends log output to stderr instead of a rotating file.
const StderrLogFile = "-"

// New builds the run logger from the application configuration. Every entry
// carries the invoking user, as the log lines of the cron job always have.
// The returned closer releases the log file.
func New(cfg *config.AppConfig) (*logrus.Entry, io.Closer, error) {
	log := logrus.New()

	var closer io.Closer = nopCloser{}
	if cfg.LogFile == StderrLogFile {
		log.SetOutput(os.Stderr)
	} else {
		w, err := NewRotatingWriter(cfg.LogFile, cfg.LogRotation, cfg.LogMaxBackups)
		if err != nil {
			return nil, nil, err
		}
		log.SetOutput(w)
		closer = w
	}

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	// Set Log Formatter
	env := strings.ToLower(cfg.Environment)
	if env == "production" || env == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true, // Plain text in the log file
		})
	}

	entry := log.WithField("user", currentUser())
	entry.Debugf("Log level set to: %s", log.GetLevel().String())
	return entry, closer, nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

// Fallback returns a stderr logger for failures that happen before the
// configured logger exists.
func Fallback() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return log.WithField("user", currentUser())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
