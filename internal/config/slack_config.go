package config

// SlackConfig holds the incoming-webhook settings for report delivery.
type SlackConfig struct {
	// Channel overrides the webhook's default destination; empty means the
	// channel field is omitted from the payload entirely.
	Channel     string `json:"channel,omitempty" yaml:"channel,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"omitempty,min=1"`
	TimeoutSecs int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1,max=300"`
	WebhookURL  string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"required,url"`
}

func NewDefaultSlackConfig() SlackConfig {
	return SlackConfig{
		MaxAttempts: DefaultSlackMaxAttempts,
		TimeoutSecs: DefaultSlackTimeoutSecs,
	}
}
