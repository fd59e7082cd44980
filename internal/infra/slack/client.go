package slack

import (
	"context"

	"github.com/hamiltra/net-reminder/internal/domain/notification"

	"github.com/slack-go/slack"
)

// Mirror posts notice summaries to one Slack channel.
type Mirror struct {
	client    *slack.Client
	channelID string
}

// NewMirror creates a Slack mirror. apiURL may be empty for the public API.
func NewMirror(token, channelID, apiURL string) *Mirror {
	var opts []slack.Option
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Mirror{client: slack.New(token, opts...), channelID: channelID}
}

func (m *Mirror) Name() string {
	return "slack"
}

// Send posts the summary; recipients are ignored.
func (m *Mirror) Send(ctx context.Context, notice *notification.Notice, _ []string) error {
	_, _, err := m.client.PostMessageContext(ctx, m.channelID,
		slack.MsgOptionText(notice.Summary, false),
		slack.MsgOptionAsUser(false),
	)
	return err
}
