package ephemeris

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonillum"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/parallax"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/lunar/moonwatch/internal/transform"
)

// Almanac library choice: github.com/soniakeys/meeus/v3
//
// Selected for: pure Go implementation of the standard Meeus "Astronomical
// Algorithms" lunar/solar theory, no external ephemeris files to download,
// deterministic output, and a rise/set search that reports the circumpolar
// case as a distinct error instead of a sentinel time.

// Meeus is a Provider backed by the Meeus almanac series. It holds no state;
// every call is a pure function of its arguments.
type Meeus struct{}

// NewMeeus returns a Meeus-based Provider.
func NewMeeus() *Meeus {
	return &Meeus{}
}

// apparentEquatorial returns the Moon's apparent geocentric right ascension
// and declination plus its distance in kilometers at the given Julian date.
func apparentEquatorial(jd float64) (α unit.RA, δ unit.Angle, distKm float64) {
	λ, β, Δ := moonposition.Position(jd)
	Δψ, Δε := nutation.Nutation(jd)
	ε := nutation.MeanObliquity(jd) + Δε
	sε, cε := math.Sincos(ε.Rad())
	α, δ = coord.EclToEq(λ+Δψ, β, sε, cε)
	return α, δ, Δ
}

// gastRad returns Greenwich apparent sidereal time at jd as a rotation angle
// in radians. unit.Time measures seconds of a day.
func gastRad(jd float64) float64 {
	return float64(sidereal.Apparent(jd)) / 86400 * 2 * math.Pi
}

// TopocentricAt computes the Moon's apparent position for an observer at the
// given geodetic coordinates. A timestamp without an explicit offset is a UTC
// instant by construction of time.Time; one with an offset is converted.
func (m *Meeus) TopocentricAt(t time.Time, latDeg, lonDeg float64) (MoonPosition, error) {
	t = t.UTC()
	jd := julian.TimeToJD(t)

	α, δ, distKm := apparentEquatorial(jd)
	θ := gastRad(jd)

	obs := transform.NewObserverPosition(latDeg, lonDeg, 0)
	moonECEF := transform.EquatorialToECEF(α.Rad(), δ.Rad(), distKm, θ)
	la := transform.ECEFToLookAngles(obs, moonECEF)
	raRad, decRad, rangeKm := transform.TopocentricRADec(obs, moonECEF, θ)

	pos := MoonPosition{
		TimeUTC:      t,
		LatitudeDeg:  latDeg,
		LongitudeDeg: lonDeg,
		AzimuthDeg:   la.AzimuthDeg,
		AltitudeDeg:  la.AltitudeDeg,
		DistanceKm:   rangeKm,
		RAHours:      raRad / (2 * math.Pi) * 24,
		DecDeg:       decRad * 180 / math.Pi,
	}
	if err := checkFinite(pos); err != nil {
		return MoonPosition{}, err
	}
	return pos, nil
}

// checkFinite rejects NaN/Inf output. The almanac series should never produce
// one, so a hit indicates corrupted input rather than a computable answer.
func checkFinite(p MoonPosition) error {
	for _, v := range []float64{p.AzimuthDeg, p.AltitudeDeg, p.DistanceKm, p.RAHours, p.DecDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("moon position at %s: non-finite output", p.TimeUTC.Format(time.RFC3339))
		}
	}
	if p.DistanceKm <= 0 {
		return fmt.Errorf("moon position at %s: non-positive distance %.1f km", p.TimeUTC.Format(time.RFC3339), p.DistanceKm)
	}
	return nil
}

// RiseSetEvents searches the UTC calendar day containing date for horizon
// crossings of the Moon. The standard altitude accounts for the Moon's
// horizontal parallax at its distance on that date.
func (m *Meeus) RiseSetEvents(date time.Time, latDeg, lonDeg float64) ([]Event, error) {
	date = date.UTC()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	jd := julian.TimeToJD(midnight)

	α, δ, distKm := apparentEquatorial(jd)

	// Meeus reckons geographic longitude positive westward.
	coords := globeCoord(latDeg, lonDeg)
	π := parallax.Horizontal(distKm / base.AU)
	h0 := rise.Stdh0Lunar(π)
	Th0 := sidereal.Apparent0UT(jd)

	tRise, _, tSet, err := rise.ApproxTimes(coords, h0, Th0, α, δ)
	if err != nil {
		// The only failure mode of the search: the Moon stays above or below
		// the horizon for the whole day. A day without crossings is a
		// legitimate empty result.
		return nil, nil
	}

	events := []Event{
		{Time: midnight.Add(secondsOfDay(tRise)), Kind: EventRise},
		{Time: midnight.Add(secondsOfDay(tSet)), Kind: EventSet},
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })
	return events, nil
}

// secondsOfDay converts a unit.Time (seconds since 0h UT) to a duration
// offset from midnight.
func secondsOfDay(t unit.Time) time.Duration {
	return time.Duration(float64(t) * float64(time.Second))
}

// globeCoord builds a globe.Coord from east-positive longitude degrees.
// globe.Coord.Lon is positive westward, so the sign flips at this boundary.
func globeCoord(latDeg, lonDeg float64) globe.Coord {
	return globe.Coord{
		Lat: unit.AngleFromDeg(latDeg),
		Lon: unit.AngleFromDeg(-lonDeg),
	}
}

// IlluminationAt computes the Moon's geocentric phase and illuminated
// percentage. Unlike TopocentricAt this is deliberately geocentric: phase is
// an Earth-Moon-Sun geometry question, not an observer one.
func (m *Meeus) IlluminationAt(t time.Time) (Illumination, error) {
	jd := julian.TimeToJD(t.UTC())

	λ, β, Δ := moonposition.Position(jd)
	T := base.J2000Century(jd)
	λ0 := solar.ApparentLongitude(T)
	sunKm := solar.Radius(T) * base.AU

	i := moonillum.PhaseAngleEcl(λ, β, Δ, λ0, sunKm)
	frac := base.Illuminated(i)

	ill := Illumination{
		PhaseDeg: (λ - λ0).Mod1().Deg(),
		Percent:  frac * 100,
	}
	if math.IsNaN(ill.PhaseDeg) || math.IsNaN(ill.Percent) {
		return Illumination{}, fmt.Errorf("illumination at %s: non-finite output", t.UTC().Format(time.RFC3339))
	}
	return ill, nil
}
