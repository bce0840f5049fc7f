package inactivity

import (
	"os"
	"time"
)

// Config carries every timing constant the monitor uses. Production and
// test profiles differ only in the values supplied here; there is no
// separate code path for test mode.
type Config struct {
	// PollInterval is how often a monitor re-checks activity.
	PollInterval time.Duration

	// Spacing is the gap between consecutive scheduled notifications.
	Spacing time.Duration

	// Horizon bounds how far ahead a series is scheduled.
	Horizon time.Duration

	// InactivityThreshold is how long without activity counts as inactive.
	InactivityThreshold time.Duration

	// AnchorTolerance filters out timestamp jitter (e.g. the scheduler's
	// own bookkeeping writes) when deciding whether activity is "new".
	AnchorTolerance time.Duration

	// Quiet hours: fire times landing at or after QuietStartHour local are
	// pushed to QuietEndHour the next day, before registration.
	QuietHoursEnabled bool
	QuietStartHour    int
	QuietEndHour      int
}

func ProductionConfig() Config {
	return Config{
		PollInterval:        5 * time.Hour,
		Spacing:             5 * time.Hour,
		Horizon:             30 * 24 * time.Hour,
		InactivityThreshold: 5 * time.Hour,
		AnchorTolerance:     30 * time.Second,
		QuietHoursEnabled:   true,
		QuietStartHour:      22,
		QuietEndHour:        8,
	}
}

func TestConfig() Config {
	return Config{
		PollInterval:        30 * time.Second,
		Spacing:             2 * time.Minute,
		Horizon:             30 * time.Minute,
		InactivityThreshold: 36 * time.Second,
		AnchorTolerance:     time.Second,
		QuietHoursEnabled:   false,
		QuietStartHour:      22,
		QuietEndHour:        8,
	}
}

// ConfigFromEnv selects the timing profile. INACTIVITY_TEST_MODE=true
// switches every constant at once, matching the mobile client's behavior.
func ConfigFromEnv() Config {
	if os.Getenv("INACTIVITY_TEST_MODE") == "true" {
		return TestConfig()
	}
	return ProductionConfig()
}
