package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMailerWithoutHostIsNop(t *testing.T) {
	m := NewMailer("", 587, "", "", "roster@precinct.local")
	assert.IsType(t, NopMailer{}, m)
	assert.NoError(t, m.Send("a@b.c", "subject", "body"))
}

func TestNewMailerWithHost(t *testing.T) {
	m := NewMailer("smtp.precinct.local", 587, "user", "pass", "roster@precinct.local")
	assert.IsType(t, &SMTPMailer{}, m)
}

func TestNewAlerterNeedsTokenAndChannel(t *testing.T) {
	assert.IsType(t, NopAlerter{}, NewAlerter("", "C123"))
	assert.IsType(t, NopAlerter{}, NewAlerter("xoxb-token", ""))
	assert.IsType(t, &SlackAlerter{}, NewAlerter("xoxb-token", "C123"))
}
