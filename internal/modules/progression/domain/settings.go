package domain

type Settings struct {
	SoundEnabled     bool `yaml:"sound_enabled" json:"sound_enabled"`
	VibrationEnabled bool `yaml:"vibration_enabled" json:"vibration_enabled"`
	AutoBreak        bool `yaml:"auto_break" json:"auto_break"`
	DailyGoal        int  `yaml:"daily_goal" json:"daily_goal"`
	CustomMinutes    int  `yaml:"custom_minutes" json:"custom_minutes"`
}

func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:     true,
		VibrationEnabled: true,
		DailyGoal:        8,
		CustomMinutes:    45,
	}
}

func (s Settings) Normalized() Settings {
	if s.DailyGoal < 1 {
		s.DailyGoal = 1
	}
	if s.CustomMinutes < 1 {
		s.CustomMinutes = 1
	}
	if s.CustomMinutes > 180 {
		s.CustomMinutes = 180
	}
	return s
}
