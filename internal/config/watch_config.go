package config

// WatchedCountry pairs a country name, as it appears in the source table's
// first column, with the free-form text that introduces its report block.
type WatchedCountry struct {
	Intro string `json:"intro" yaml:"intro" validate:"required"`
	Name  string `json:"name" yaml:"name" validate:"required"`
}

// WatchConfig lists the countries surfaced in each report, in display order.
type WatchConfig struct {
	Countries []WatchedCountry `json:"countries,omitempty" yaml:"countries,omitempty" validate:"omitempty,dive"`
}

func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{}
}
