package config

// SourceConfig describes the statistics page to poll and how to locate the
// freshness marker and data table inside it.
type SourceConfig struct {
	MarkerLabel    string `json:"marker_label,omitempty" yaml:"marker_label,omitempty"`
	MarkerSelector string `json:"marker_selector,omitempty" yaml:"marker_selector,omitempty"`
	MaxBodyBytes   int    `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"omitempty,min=1"`
	TableSelector  string `json:"table_selector,omitempty" yaml:"table_selector,omitempty"`
	TimeoutSecs    int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1,max=300"`
	URL            string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

func NewDefaultSourceConfig() SourceConfig {
	return SourceConfig{
		MarkerLabel:    DefaultMarkerLabel,
		MarkerSelector: DefaultMarkerSelector,
		MaxBodyBytes:   DefaultSourceMaxBodyBytes,
		TableSelector:  DefaultTableSelector,
		TimeoutSecs:    DefaultSourceTimeoutSecs,
		URL:            DefaultSourceURL,
		UserAgent:      DefaultSourceUserAgent,
	}
}
