package config

// ReportConfig controls report rendering.
type ReportConfig struct {
	// Locale is a BCP 47 tag governing number formatting (grouping and
	// decimal separators) in the rendered report.
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`
}

func NewDefaultReportConfig() ReportConfig {
	return ReportConfig{
		Locale: DefaultReportLocale,
	}
}
