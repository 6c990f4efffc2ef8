package ephemeris

import (
	"math"
	"testing"
	"time"
)

const (
	ksLat = 28.57
	ksLon = -80.65
)

func TestTopocentricAt_RangeInvariants(t *testing.T) {
	m := NewMeeus()

	timestamps := []time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 3, 30, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2030, 7, 4, 18, 0, 0, 0, time.UTC),
	}

	for _, ts := range timestamps {
		pos, err := m.TopocentricAt(ts, ksLat, ksLon)
		if err != nil {
			t.Fatalf("TopocentricAt(%v) failed: %v", ts, err)
		}

		if pos.AzimuthDeg < 0 || pos.AzimuthDeg >= 360 {
			t.Errorf("%v: azimuth %.3f out of [0,360)", ts, pos.AzimuthDeg)
		}
		if pos.AltitudeDeg < -90 || pos.AltitudeDeg > 90 {
			t.Errorf("%v: altitude %.3f out of [-90,90]", ts, pos.AltitudeDeg)
		}
		// Topocentric lunar distance stays within the perigee/apogee band
		// plus an Earth radius of parallax.
		if pos.DistanceKm < 350000 || pos.DistanceKm > 413000 {
			t.Errorf("%v: distance %.0f km outside lunar range", ts, pos.DistanceKm)
		}
		if pos.RAHours < 0 || pos.RAHours >= 24 {
			t.Errorf("%v: RA %.3f out of [0,24)", ts, pos.RAHours)
		}
		if pos.DecDeg < -90 || pos.DecDeg > 90 {
			t.Errorf("%v: dec %.3f out of [-90,90]", ts, pos.DecDeg)
		}
		for name, v := range map[string]float64{
			"azimuth": pos.AzimuthDeg, "altitude": pos.AltitudeDeg,
			"distance": pos.DistanceKm, "ra": pos.RAHours, "dec": pos.DecDeg,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%v: %s is not finite", ts, name)
			}
		}
	}
}

func TestTopocentricAt_Deterministic(t *testing.T) {
	m := NewMeeus()
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a, err := m.TopocentricAt(ts, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.TopocentricAt(ts, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated call differs:\n  %+v\n  %+v", a, b)
	}
}

func TestTopocentricAt_OffsetTimestampConvertedToUTC(t *testing.T) {
	m := NewMeeus()

	utc := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// Same instant expressed in a -05:00 zone.
	offset := utc.In(time.FixedZone("EST", -5*3600))

	a, err := m.TopocentricAt(utc, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.TopocentricAt(offset, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("offset timestamp result differs from UTC result:\n  %+v\n  %+v", a, b)
	}
}

func TestTopocentricAt_RecordsObserver(t *testing.T) {
	m := NewMeeus()
	ts := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	pos, err := m.TopocentricAt(ts, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	if pos.LatitudeDeg != ksLat || pos.LongitudeDeg != ksLon {
		t.Errorf("observer = %.2f, %.2f, want %.2f, %.2f", pos.LatitudeDeg, pos.LongitudeDeg, ksLat, ksLon)
	}
	if !pos.TimeUTC.Equal(ts) {
		t.Errorf("TimeUTC = %v, want %v", pos.TimeUTC, ts)
	}
}

func TestIlluminationAt_KnownPhases(t *testing.T) {
	m := NewMeeus()

	cases := []struct {
		name       string
		ts         time.Time
		minPct     float64
		maxPct     float64
		phaseLow   float64 // inclusive lower bound on phase angle, degrees
		phaseHigh  float64
		phaseWraps bool // phase near 0/360 boundary
	}{
		{
			// Known new moon: Jan 21, 2023 20:53 UTC.
			name: "new moon", ts: time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC),
			minPct: 0, maxPct: 2, phaseWraps: true,
		},
		{
			// Known full moon: Feb 5, 2023 18:29 UTC.
			name: "full moon", ts: time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC),
			minPct: 98, maxPct: 100, phaseLow: 170, phaseHigh: 190,
		},
		{
			// Known first quarter: Jan 28, 2023 15:19 UTC.
			name: "first quarter", ts: time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC),
			minPct: 45, maxPct: 55, phaseLow: 80, phaseHigh: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ill, err := m.IlluminationAt(tc.ts)
			if err != nil {
				t.Fatal(err)
			}
			if ill.Percent < tc.minPct || ill.Percent > tc.maxPct {
				t.Errorf("illumination = %.2f%%, want [%.0f, %.0f]", ill.Percent, tc.minPct, tc.maxPct)
			}
			if ill.PhaseDeg < 0 || ill.PhaseDeg >= 360 {
				t.Errorf("phase = %.2f out of [0,360)", ill.PhaseDeg)
			}
			if tc.phaseWraps {
				if ill.PhaseDeg > 10 && ill.PhaseDeg < 350 {
					t.Errorf("new-moon phase = %.2f°, want near 0/360", ill.PhaseDeg)
				}
			} else if ill.PhaseDeg < tc.phaseLow || ill.PhaseDeg > tc.phaseHigh {
				t.Errorf("phase = %.2f°, want [%.0f, %.0f]", ill.PhaseDeg, tc.phaseLow, tc.phaseHigh)
			}
		})
	}
}

func TestRiseSetEvents_WithinDayAndOrdered(t *testing.T) {
	m := NewMeeus()
	date := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) // time-of-day discarded

	events, err := m.RiseSetEvents(date, ksLat, ksLon)
	if err != nil {
		t.Fatalf("RiseSetEvents failed: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected horizon crossings at mid-latitude, got none")
	}

	dayStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	for i, ev := range events {
		if ev.Time.Before(dayStart) || !ev.Time.Before(dayEnd) {
			t.Errorf("event %d at %v outside UTC day [%v, %v)", i, ev.Time, dayStart, dayEnd)
		}
		if ev.Kind != EventRise && ev.Kind != EventSet {
			t.Errorf("event %d has unknown kind %v", i, ev.Kind)
		}
		if i > 0 && events[i].Time.Before(events[i-1].Time) {
			t.Errorf("events out of order: %v before %v", events[i].Time, events[i-1].Time)
		}
	}

	var haveRise bool
	for _, ev := range events {
		if ev.Kind == EventRise {
			haveRise = true
		}
	}
	if !haveRise {
		t.Error("expected a rise event on 2025-01-01 at KSC")
	}
}

func TestRiseSetEvents_TimeOfDayDiscarded(t *testing.T) {
	m := NewMeeus()

	morning := time.Date(2025, 1, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC)

	a, err := m.RiseSetEvents(morning, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.RiseSetEvents(evening, ksLat, ksLon)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("event counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Time.Equal(b[i].Time) || a[i].Kind != b[i].Kind {
			t.Errorf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEventKind_String(t *testing.T) {
	if EventRise.String() != "rise" || EventSet.String() != "set" {
		t.Errorf("unexpected kind names: %q, %q", EventRise.String(), EventSet.String())
	}
}
