package kernel

import (
	"errors"
	"fmt"
	"math"

	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

const (
	// GeoLatitudeMin and GeoLatitudeMax bound valid latitudes in degrees.
	GeoLatitudeMin = -90.0
	GeoLatitudeMax = 90.0
	// GeoLongitudeMin and GeoLongitudeMax bound valid longitudes in degrees.
	GeoLongitudeMin = -180.0
	GeoLongitudeMax = 180.0

	// earthRadiusMeters is the mean Earth radius used by the haversine formula.
	earthRadiusMeters = 6_371_000.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a WGS-84 coordinate pair.
// It backs all geofence checks: a job's registered address is frozen as a
// GeoPoint at booking time, and cleaner-supplied GPS fixes are compared
// against it with great-circle (haversine) distance, never straight
// Euclidean distance.
//
// The zero value is invalid and fails validation - use the constructor.
//
// Example:
//
//	loc, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // handle validation error
//	}
//	meters, _ := loc.DistanceTo(other)
type GeoPoint struct { //nolint:recvcheck //pointer receivers on private setters for construction-time validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// decimal degrees. Returns an error if either coordinate is outside the
// valid WGS-84 bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was properly constructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two geo points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceTo returns the great-circle distance to the other point in meters,
// computed with the haversine formula over a mean Earth radius of 6371 km.
// Both points must be properly constructed.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// WithinRadius reports whether the other point lies within radiusMeters of
// this point. The boundary is inclusive: a point at exactly radiusMeters
// passes the check.
func (p GeoPoint) WithinRadius(other GeoPoint, radiusMeters float64) (bool, error) {
	distance, err := p.DistanceTo(other)
	if err != nil {
		return false, err
	}

	return distance <= radiusMeters, nil
}

// setLatitude sets the latitude with validation.
// Pointer receiver enables self-encapsulated validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoLatitudeMin || latitude > GeoLatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoLatitudeMin, GeoLatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoLongitudeMin || longitude > GeoLongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoLongitudeMin, GeoLongitudeMax)
	}

	p.longitude = longitude
	return nil
}
