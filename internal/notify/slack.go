package notify

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Alerter posts short operational messages to the supervisors' channel.
type Alerter interface {
	Alert(message string) error
}

type SlackAlerter struct {
	client    *slack.Client
	channelID string
}

func NewSlackAlerter(token, channelID string) *SlackAlerter {
	return &SlackAlerter{client: slack.New(token), channelID: channelID}
}

func (s *SlackAlerter) Alert(message string) error {
	_, _, err := s.client.PostMessage(
		s.channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

type NopAlerter struct{}

func (NopAlerter) Alert(message string) error { return nil }

func NewAlerter(token, channelID string) Alerter {
	if token == "" || channelID == "" {
		return NopAlerter{}
	}
	return NewSlackAlerter(token, channelID)
}
