// Package photoperiod calculates day length from solar geometry. Green-up
// timing correlates strongly with photoperiod at mid and high latitudes,
// so day length is a common covariate alongside extracted transition
// dates.
package photoperiod

import "math"

const degToRad = math.Pi / 180.0

// declination returns the solar declination in radians for a day of year,
// using the ASCE closed-form approximation.
func declination(dayOfYear int) float64 {
	doy := float64(dayOfYear)
	inner := (356.6 + 0.9856*doy) * degToRad
	outer := (278.97 + 0.9856*doy + 1.9165*math.Sin(inner)) * degToRad
	return math.Asin(0.39785 * math.Sin(outer))
}

// DayLength returns the hours of daylight for the given day-of-year
// (1-366) at the specified latitude in degrees. Polar day yields 24,
// polar night 0.
func DayLength(dayOfYear int, latitude float64) float64 {
	decl := declination(dayOfYear)
	latRad := latitude * degToRad

	// Hour angle at sunrise/sunset: cos(H) = -tan(lat) * tan(decl).
	cosH := -math.Tan(latRad) * math.Tan(decl)

	if cosH < -1.0 {
		return 24.0 // sun never sets
	}
	if cosH > 1.0 {
		return 0.0 // sun never rises
	}

	hourAngleDeg := math.Acos(cosH) / degToRad
	return 2.0 * hourAngleDeg / 15.0 // 15 degrees of hour angle per hour
}
