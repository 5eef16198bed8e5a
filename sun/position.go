package sun

import (
	"math"
	"time"
)

const (
	deg = math.Pi / 180

	// j2000 is the Julian Date of the J2000.0 epoch, 2000-01-01 12:00 TT.
	j2000 = 2451545.0
)

// julianDay converts t to a Julian Date. UT is used directly; the minute-level
// accuracy target does not warrant a TT correction.
func julianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	frac := (float64(u.Hour()) +
		float64(u.Minute())/60 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/3600) / 24

	y, m := year, int(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 + frac
}

// solarEquatorial returns the Sun's apparent right ascension and declination
// in degrees at time t, using the low-precision series from Meeus
// (Astronomical Algorithms, ch. 25). Good to ~0.01° over the current era.
func solarEquatorial(t time.Time) (raDeg, decDeg float64) {
	T := (julianDay(t) - j2000) / 36525

	// Mean longitude and mean anomaly of the Sun.
	L0 := normalize360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := (357.52911 + 35999.05029*T - 0.0001537*T*T) * deg

	// Equation of center.
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Apparent ecliptic longitude, corrected for nutation and aberration.
	omega := (125.04 - 1934.136*T) * deg
	lambda := (L0 + C - 0.00569 - 0.00478*math.Sin(omega)) * deg

	// Obliquity of the ecliptic, with the nutation term matching lambda.
	eps := (23.439291 - 0.0130042*T + 0.00256*math.Cos(omega)) * deg

	ra := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(eps) * math.Sin(lambda))

	return ra / deg, dec / deg
}

// Altitude returns the Sun's apparent altitude in degrees above the
// observer's horizon at time t. It is a pure function of the observer and
// the instant; the solver evaluates it many times per event.
func (o Observer) Altitude(t time.Time) float64 {
	ra, dec := solarEquatorial(t)

	// Greenwich mean sidereal time, degrees.
	d := julianDay(t) - j2000
	gmst := normalize360(280.46061837 + 360.98564736629*d)

	// Local hour angle of the Sun.
	h := normalize360(gmst+o.Longitude-ra) * deg

	lat := o.Latitude * deg
	decR := dec * deg
	sinAlt := math.Sin(lat)*math.Sin(decR) + math.Cos(lat)*math.Cos(decR)*math.Cos(h)
	alt := math.Asin(clamp(sinAlt, -1, 1)) / deg

	if o.Pressure > 0 {
		alt += refraction(alt, o.Pressure, o.Temperature)
	}
	if o.Elevation > 0 {
		// Horizon dip for an elevated observer, ~1.76' per sqrt(meter).
		alt += 1.76 / 60 * math.Sqrt(o.Elevation)
	}

	return alt
}

// refraction approximates atmospheric refraction in degrees at geometric
// altitude altDeg using Saemundsson's formula,
//
//	R (arcmin) ≈ 1.02 / tan(alt + 10.3/(alt + 5.11))
//
// scaled for pressure (hPa) and temperature (°C). The formula is only
// meaningful near and above the horizon; below -0.5° the clamped value is
// faded out linearly, reaching 0 at -1°, so the apparent altitude the
// solver bisects stays continuous through the horizon.
func refraction(altDeg, pressure, temperature float64) float64 {
	if altDeg < -1 {
		return 0
	}
	alt := altDeg
	taper := 1.0
	if alt < -0.5 {
		taper = (alt + 1) / 0.5
		alt = -0.5
	}

	r := 1.02 / math.Tan((alt+10.3/(alt+5.11))*deg)
	r *= pressure / 1010 * 283 / (273 + temperature)

	return taper * r / 60
}

// normalize360 wraps an angle into [0, 360) degrees.
func normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
