package config

// ScheduleConfig controls when the daily poll cycle runs.
type ScheduleConfig struct {
	// RefreshAt is the wall-clock time of day ("HH:MM:SS") at which a cycle starts.
	RefreshAt string `json:"refresh_at,omitempty" yaml:"refresh_at,omitempty" validate:"omitempty,datetime=15:04:05"`
	// Timezone is the IANA zone name RefreshAt is interpreted in.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" validate:"omitempty,timezone"`
}

func NewDefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		RefreshAt: DefaultScheduleRefreshAt,
		Timezone:  DefaultScheduleTimezone,
	}
}
