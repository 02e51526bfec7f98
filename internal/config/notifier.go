package config

import (
	"os"
)

const (
	notifyDaemonURLEnv   = "NOTIFY_DAEMON_URL"
	notifyChannelNameEnv = "NOTIFY_CHANNEL_NAME"

	defaultNotifyChannelName = "campusdesk"
)

// NotifierConfig configures the local notification daemon client. An
// empty BaseURL disables delivery; the engine still runs its passes
// against a no-op notifier.
type NotifierConfig struct {
	BaseURL     string
	ChannelName string
}

func LoadNotifierConfig() *NotifierConfig {
	channelName := os.Getenv(notifyChannelNameEnv)
	if channelName == "" {
		channelName = defaultNotifyChannelName
	}

	return &NotifierConfig{
		BaseURL:     os.Getenv(notifyDaemonURLEnv),
		ChannelName: channelName,
	}
}

// Enabled reports whether a notification daemon is configured.
func (c *NotifierConfig) Enabled() bool {
	return c != nil && c.BaseURL != ""
}
