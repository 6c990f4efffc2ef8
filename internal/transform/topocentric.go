// Package transform converts between geodetic, Earth-fixed, and
// equatorial-of-date frames and computes observer look angles.
package transform

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378.137              // semi-major axis (kilometers)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// ECEFVector is an Earth-fixed position in kilometers.
type ECEFVector struct {
	X, Y, Z float64
}

// ObserverPosition holds a ground observer's location in both geodetic and
// Earth-fixed frames. The ECEF coordinates are precomputed once so they can be
// reused across many target lookups.
type ObserverPosition struct {
	LatRad, LonRad, AltM float64 // geodetic (radians, meters above ellipsoid)
	ECEF                 ECEFVector
}

// LookAngles holds azimuth, altitude, and range from observer to target.
type LookAngles struct {
	AzimuthDeg  float64 // 0 = North, clockwise
	AltitudeDeg float64 // 0 = horizon, 90 = zenith
	RangeKm     float64
}

// NewObserverPosition creates an ObserverPosition from geodetic coordinates.
// Latitude and longitude are in degrees, altitude in meters above the WGS-84
// ellipsoid.
func NewObserverPosition(latDeg, lonDeg, altM float64) ObserverPosition {
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0
	altKm := altM / 1000.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	sinLon := math.Sin(lon)
	cosLon := math.Cos(lon)

	// Radius of curvature in the prime vertical.
	N := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return ObserverPosition{
		LatRad: lat,
		LonRad: lon,
		AltM:   altM,
		ECEF: ECEFVector{
			X: (N + altKm) * cosLat * cosLon,
			Y: (N + altKm) * cosLat * sinLon,
			Z: (N*(1-wgs84E2) + altKm) * sinLat,
		},
	}
}

// EquatorialToECEF converts an apparent geocentric equatorial position
// (right ascension and declination in radians, distance in kilometers) to the
// Earth-fixed frame. gastRad is the Greenwich apparent sidereal time expressed
// as a rotation angle in radians.
func EquatorialToECEF(raRad, decRad, distKm, gastRad float64) ECEFVector {
	cosDec := math.Cos(decRad)
	// Position in the equatorial frame of date.
	x := distKm * cosDec * math.Cos(raRad)
	y := distKm * cosDec * math.Sin(raRad)
	z := distKm * math.Sin(decRad)

	// Rotate about the polar axis by the sidereal angle to get Earth-fixed.
	sinG := math.Sin(gastRad)
	cosG := math.Cos(gastRad)
	return ECEFVector{
		X: x*cosG + y*sinG,
		Y: -x*sinG + y*cosG,
		Z: z,
	}
}

// ECEFToLookAngles computes azimuth, altitude, and range from an observer to a
// target given in ECEF kilometers.
//
// Uses the SEZ (South-East-Zenith) topocentric rotation per Vallado Section 4.4.
// Azimuth: 0 = North, measured clockwise. Altitude: 0 = horizon, 90 = zenith.
func ECEFToLookAngles(obs ObserverPosition, target ECEFVector) LookAngles {
	// Range vector in ECEF.
	rx := target.X - obs.ECEF.X
	ry := target.Y - obs.ECEF.Y
	rz := target.Z - obs.ECEF.Z

	sinLat := math.Sin(obs.LatRad)
	cosLat := math.Cos(obs.LatRad)
	sinLon := math.Sin(obs.LonRad)
	cosLon := math.Cos(obs.LonRad)

	// Rotate ECEF range vector to SEZ (South, East, Zenith).
	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	rangeMag := math.Sqrt(south*south + east*east + zenith*zenith)

	// Altitude: angle above the horizon plane.
	alt := math.Asin(zenith / rangeMag)

	// Azimuth: measured clockwise from North.
	// In SEZ, North = -South direction, so az = atan2(east, -south).
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return LookAngles{
		AzimuthDeg:  az * 180.0 / math.Pi,
		AltitudeDeg: alt * 180.0 / math.Pi,
		RangeKm:     rangeMag,
	}
}

// TopocentricRADec computes the right ascension and declination of a target as
// seen from the observer, along with the topocentric range. The Earth-fixed
// range vector is rotated back to the equatorial frame of date by the sidereal
// angle, which folds diurnal parallax into the result. Right ascension is
// returned in [0, 2pi) radians.
func TopocentricRADec(obs ObserverPosition, target ECEFVector, gastRad float64) (raRad, decRad, rangeKm float64) {
	rx := target.X - obs.ECEF.X
	ry := target.Y - obs.ECEF.Y
	rz := target.Z - obs.ECEF.Z

	// Inverse of the EquatorialToECEF rotation.
	sinG := math.Sin(gastRad)
	cosG := math.Cos(gastRad)
	xc := rx*cosG - ry*sinG
	yc := rx*sinG + ry*cosG
	zc := rz

	rangeKm = math.Sqrt(xc*xc + yc*yc + zc*zc)
	raRad = math.Atan2(yc, xc)
	if raRad < 0 {
		raRad += 2 * math.Pi
	}
	decRad = math.Asin(zc / rangeKm)
	return raRad, decRad, rangeKm
}
