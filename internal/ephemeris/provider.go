// Package ephemeris supplies apparent positions, rise/set events, and
// illumination of the Moon for an observer on the ground.
package ephemeris

import "time"

// MoonPosition is the Moon's apparent topocentric position at a single instant.
type MoonPosition struct {
	TimeUTC      time.Time `json:"time_utc"`
	LatitudeDeg  float64   `json:"latitude_deg"`
	LongitudeDeg float64   `json:"longitude_deg"`
	AzimuthDeg   float64   `json:"azimuth_deg"`  // 0 = North, clockwise
	AltitudeDeg  float64   `json:"altitude_deg"` // degrees above horizon
	DistanceKm   float64   `json:"distance_km"`
	RAHours      float64   `json:"ra_hours"`
	DecDeg       float64   `json:"dec_deg"`
}

// EventKind classifies a horizon-crossing event.
type EventKind int

const (
	EventRise EventKind = iota
	EventSet
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRise:
		return "rise"
	case EventSet:
		return "set"
	default:
		return "unknown"
	}
}

// Event is a horizon crossing of the Moon within a UTC calendar day.
type Event struct {
	Time time.Time `json:"time"`
	Kind EventKind `json:"kind"`
}

// Illumination holds the geocentric Sun-Moon phase state at an instant.
type Illumination struct {
	PhaseDeg float64 `json:"phase_deg"` // Sun-Moon ecliptic longitude difference, [0,360)
	Percent  float64 `json:"percent"`   // illuminated fraction of the disk, 0-100
}

// Provider computes lunar ephemeris quantities. Implementations must be
// deterministic: identical inputs produce identical outputs.
type Provider interface {
	// TopocentricAt returns the Moon's apparent position for an observer at
	// the given geodetic coordinates (degrees north, degrees east). Timestamps
	// are converted to UTC before use.
	TopocentricAt(t time.Time, latDeg, lonDeg float64) (MoonPosition, error)

	// RiseSetEvents returns the Moon's horizon crossings within the UTC
	// calendar day containing date, ordered by time. An empty slice means the
	// Moon does not cross the horizon that day.
	RiseSetEvents(date time.Time, latDeg, lonDeg float64) ([]Event, error)

	// IlluminationAt returns the geocentric phase angle and illuminated
	// percentage of the Moon's disk at the given instant.
	IlluminationAt(t time.Time) (Illumination, error)
}
