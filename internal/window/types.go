// Package window loads candidate launch windows and enriches each one with
// lunar ephemeris facts for the launch site.
package window

import (
	"time"

	"github.com/lunar/moonwatch/internal/ephemeris"
)

// LaunchWindow is one raw row of the availability file.
type LaunchWindow struct {
	StartUTC     time.Time `json:"window_start_utc"`
	DurationMins int       `json:"duration_mins"`
}

// EndUTC returns the window close time.
func (w LaunchWindow) EndUTC() time.Time {
	return w.StartUTC.Add(time.Duration(w.DurationMins) * time.Minute)
}

// EnrichedWindow is a launch window with its derived astronomical facts.
// MoonriseUTC/MoonriseLocal are nil when the Moon does not rise during the
// UTC calendar day containing the window start; a rise that exists may still
// fall outside the window itself.
type EnrichedWindow struct {
	LaunchWindow

	EndUTC     time.Time `json:"window_end_utc"`
	StartLocal time.Time `json:"window_start_local"`
	EndLocal   time.Time `json:"window_end_local"`

	MoonStart ephemeris.MoonPosition `json:"moon_position_start"`
	MoonEnd   ephemeris.MoonPosition `json:"moon_position_end"`

	MoonriseUTC   *time.Time `json:"moonrise_utc,omitempty"`
	MoonriseLocal *time.Time `json:"moonrise_local,omitempty"`

	IlluminationPercent float64 `json:"moon_illumination_percent"`
	PhaseDeg            float64 `json:"moon_phase_deg"`
}
