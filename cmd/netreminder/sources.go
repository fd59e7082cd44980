package main

import (
	"context"
	"fmt"

	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/hamiltra/net-reminder/internal/domain/roster"
	"github.com/hamiltra/net-reminder/internal/domain/schedule"
	"github.com/hamiltra/net-reminder/internal/infra/config"
	"github.com/hamiltra/net-reminder/internal/infra/database"
	"github.com/hamiltra/net-reminder/internal/infra/slack"
	"github.com/hamiltra/net-reminder/internal/infra/spreadsheet"
	"github.com/hamiltra/net-reminder/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

// openSources picks the schedule and roster sources. A database URL takes
// the place of the matching spreadsheet; one connection is shared when both
// URLs are the same.
func openSources(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (schedule.Source, roster.Source, func(), error) {
	conns := map[string]*database.DB{}
	cleanup := func() {
		for _, db := range conns {
			db.Close()
		}
	}
	open := func(url string) (*database.DB, error) {
		if db, ok := conns[url]; ok {
			return db, nil
		}
		db, err := database.Open(ctx, url)
		if err != nil {
			return nil, err
		}
		conns[url] = db
		return db, nil
	}

	var schedules schedule.Source
	if cfg.ScheduleDatabaseURL != "" {
		db, err := open(cfg.ScheduleDatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("could not open schedule database: %w", err)
		}
		log.Infof("Schedule source: %s database", db.Driver())
		schedules = database.NewScheduleRepository(db)
	} else {
		log.Infof("Schedule source: %s [%s]", cfg.ScheduleExcelFile, cfg.ScheduleSheetName)
		schedules = spreadsheet.NewScheduleSheet(cfg.ScheduleExcelFile, cfg.ScheduleSheetName)
	}

	var members roster.Source
	if cfg.RosterDatabaseURL != "" {
		db, err := open(cfg.RosterDatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("could not open roster database: %w", err)
		}
		log.Infof("Roster source: %s database", db.Driver())
		members = database.NewRosterRepository(db)
	} else {
		log.Infof("Roster source: %s [%s, %s]", cfg.RosterExcelFile, cfg.RosterSheetName, cfg.EmeritusSheetName)
		members = spreadsheet.NewRosterWorkbook(cfg.RosterExcelFile, cfg.RosterSheetName, cfg.EmeritusSheetName)
	}

	return schedules, members, cleanup, nil
}

func chatMirrors(cfg *config.AppConfig, log logrus.FieldLogger) ([]notification.Transport, error) {
	var mirrors []notification.Transport
	if cfg.Telegram.Token != "" {
		tg, err := telegram.NewTelebotAdapter(cfg.Telegram.Token, cfg.Telegram.ChatID, "")
		if err != nil {
			return nil, err
		}
		mirrors = append(mirrors, tg)
		log.Infof("Telegram mirror enabled for chat %d", cfg.Telegram.ChatID)
	}
	if cfg.Slack.Token != "" {
		mirrors = append(mirrors, slack.NewMirror(cfg.Slack.Token, cfg.Slack.ChannelID, ""))
		log.Infof("Slack mirror enabled for channel %s", cfg.Slack.ChannelID)
	}
	return mirrors, nil
}
