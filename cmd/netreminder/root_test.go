package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hamiltra/net-reminder/internal/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const baseConfig = `smtp_server: smtp.example.com
smtp_port: 465
smtp_auth_user: netbot@example.com
smtp_auth_pass: secret
email_from: Net Reminder <netbot@example.com>
switch_notify1_name: Sam
switch_notify1_email: sam@example.com
switch_notify2_name: Pat
switch_notify2_email: pat@example.com
excel_maintainer_name: Erin
excel_maintainer_email: erin@example.com
script_maintainer_name: Sid
script_maintainer_email: sid@example.com
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NET_REMINDER_SMTP_AUTH_PASS", "NET_REMINDER_SMTP_AUTH_USER", "NET_REMINDER_TELEGRAM_TOKEN",
		"NET_REMINDER_SLACK_TOKEN", "NET_REMINDER_DATABASE_URL", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func writeSheets(t *testing.T, path string, sheets map[string][][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			row := row
			cellName, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellName, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseReference(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 9, 17, 45, 0, 0, time.Local) }

	t.Run("defaults to today", func(t *testing.T) {
		ref, err := parseReference("", clock)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), ref)
	})

	t.Run("parses mm/dd/yyyy", func(t *testing.T) {
		ref, err := parseReference("01/02/2024", clock)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ref)
	})

	t.Run("accepts single-digit month and day", func(t *testing.T) {
		ref, err := parseReference("1/5/2024", clock)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ref)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		_, err := parseReference("2024-01-02", clock)
		var cfgErr *config.Error
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "now", cfgErr.Key)
	})
}

func TestRoot_DryRunPrintsNotice(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	schedulePath := filepath.Join(dir, "schedule.xlsx")
	writeSheets(t, schedulePath, map[string][][]interface{}{
		"Net Control": {
			{"Net Control Schedule 2024"},
			{"DATE", "Net", "PRIMARY", "BACKUP"},
			{"01/05/2024", "Weekly", "Alice", "Bob"},
			{"01/12/2024", "Weekly", "Carol", "Dave"},
		},
	})
	rosterPath := filepath.Join(dir, "roster.xlsx")
	writeSheets(t, rosterPath, map[string][][]interface{}{
		"Members":  {{"Name", "Email"}, {"Alice", "alice@example.com"}},
		"Emeritus": {{"Name", "Email"}, {"Zed", "zed@example.com"}},
	})

	cfgPath := filepath.Join(dir, "net_reminder.yaml")
	body := baseConfig + fmt.Sprintf(`schedule_excel_file: %s
schedule_sheet_name: Net Control
roster_excel_file: %s
roster_sheet_name: Members
emeritus_sheet_name: Emeritus
`, schedulePath, rosterPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	logPath := filepath.Join(dir, "net_reminder.log")

	out, err := execute(t, "-c", cfgPath, "-l", logPath, "-n", "01/02/2024", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Carol")

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "Started")
	assert.Contains(t, string(logged), "Email Subject: Weekly Net for 01/05/2024")
	assert.Contains(t, string(logged), "alice@example.com,zed@example.com")
	assert.Contains(t, string(logged), "Finished")
}

func TestRoot_MigratedEmptyDatabaseAlertsMaintainers(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nets.db")

	_, err := execute(t, "migrate", "--database-url", "sqlite://"+dbPath)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, "net_reminder.yaml")
	body := baseConfig + fmt.Sprintf("schedule_database_url: sqlite://%s\nroster_database_url: sqlite://%s\n", dbPath, dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	out, err := execute(t, "-c", cfgPath, "-l", filepath.Join(dir, "run.log"), "-n", "01/02/2024", "-t")
	require.NoError(t, err)
	assert.Contains(t, out, "No Net Control assignment found for 01/02/2024")
}

func TestRoot_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("missing config file", func(t *testing.T) {
		logPath := filepath.Join(dir, "missing-config.log")
		_, err := execute(t, "-c", filepath.Join(dir, "absent.yaml"), "-l", logPath)
		var cfgErr *config.Error
		require.True(t, errors.As(err, &cfgErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))

		logged, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(logged), "Run aborted before the configuration was loaded")
		assert.Contains(t, string(logged), "absent.yaml")
	})

	t.Run("bad reference date", func(t *testing.T) {
		logPath := filepath.Join(dir, "bad-date.log")
		_, err := execute(t, "-n", "tomorrow", "-l", logPath)
		var cfgErr *config.Error
		require.True(t, errors.As(err, &cfgErr))

		logged, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(logged), "level=error")
		assert.Contains(t, string(logged), "mm/dd/yyyy")
	})

	t.Run("unreadable schedule", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "broken.yaml")
		body := baseConfig + fmt.Sprintf(`schedule_excel_file: %s
schedule_sheet_name: Net Control
roster_excel_file: roster.xlsx
roster_sheet_name: Members
emeritus_sheet_name: Emeritus
`, filepath.Join(dir, "absent.xlsx"))
		require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

		_, err := execute(t, "-c", cfgPath, "-l", filepath.Join(dir, "broken.log"), "-t")
		assert.Error(t, err)
	})

	t.Run("migrate needs a url", func(t *testing.T) {
		_, err := execute(t, "migrate")
		assert.Error(t, err)
	})
}
