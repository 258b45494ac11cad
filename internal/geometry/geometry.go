// Package geometry converts WGS-84 coordinates to and from the Web-Mercator
// tile indices and altitude buckets the core operates on. It is a thin
// collaborator: coordinate conversion only, no polygon
// or solid tessellation.
package geometry

import (
	"math"

	"github.com/arx-os/s4d/internal/segment"
	"github.com/arx-os/s4d/internal/spatialid"
	apperrors "github.com/arx-os/s4d/pkg/errors"
)

// MaxLatitude is the Web-Mercator projection limit; beyond this the
// projection diverges.
const MaxLatitude = 85.0511287798

// MaxAltitudeMeters bounds the altitude axis: the F index at any zoom
// buckets [-MaxAltitudeMeters, MaxAltitudeMeters] evenly across its
// representable range.
const MaxAltitudeMeters = 20000.0

// LatLonToXY projects a WGS-84 latitude/longitude to the Web-Mercator tile
// index (x, y) at zoom z.
func LatLonToXY(z int, lat, lon float64) (x, y uint64, err error) {
	if lat < -MaxLatitude || lat > MaxLatitude {
		return 0, 0, apperrors.LatitudeOutOfRange(lat)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, apperrors.LongitudeOutOfRange(lon)
	}
	n := math.Exp2(float64(z))
	xf := (lon + 180) / 360 * n
	latRad := lat * math.Pi / 180
	yf := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n

	max := segment.XYMax(z)
	x = clampTile(xf, max)
	y = clampTile(yf, max)
	return x, y, nil
}

func clampTile(v float64, max uint64) uint64 {
	if v < 0 {
		return 0
	}
	t := uint64(v)
	if t > max {
		return max
	}
	return t
}

// XYToLatLon recovers the lat/lon of tile (x, y)'s northwest corner at
// zoom z, the inverse of LatLonToXY.
func XYToLatLon(z int, x, y uint64) (lat, lon float64) {
	n := math.Exp2(float64(z))
	lon = float64(x)/n*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*float64(y)/n)))
	lat = latRad * 180 / math.Pi
	return lat, lon
}

// AltitudeToF buckets an altitude in meters into the signed F index at
// zoom z.
func AltitudeToF(z int, altMeters float64) (int64, error) {
	if altMeters < -MaxAltitudeMeters || altMeters > MaxAltitudeMeters {
		return 0, apperrors.AltitudeOutOfRange(altMeters)
	}
	span := 2 * MaxAltitudeMeters
	buckets := float64(segment.FMax(z)-segment.FMin(z)) + 1
	offset := math.Floor((altMeters + MaxAltitudeMeters) / span * buckets)
	f := int64(offset) + segment.FMin(z)
	if f > segment.FMax(z) {
		f = segment.FMax(z)
	}
	if f < segment.FMin(z) {
		f = segment.FMin(z)
	}
	return f, nil
}

// FToAltitude recovers the altitude in meters at the center of F's bucket
// at zoom z, the approximate inverse of AltitudeToF.
func FToAltitude(z int, f int64) float64 {
	span := 2 * MaxAltitudeMeters
	buckets := float64(segment.FMax(z)-segment.FMin(z)) + 1
	bucketSize := span / buckets
	return -MaxAltitudeMeters + (float64(f-segment.FMin(z))+0.5)*bucketSize
}

// PointToSingleId converts a WGS-84 point (lat, lon, altitude in meters)
// into the SingleId naming its cell at zoom z.
func PointToSingleId(z uint8, lat, lon, altMeters float64) (spatialid.SingleId, error) {
	x, y, err := LatLonToXY(int(z), lat, lon)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	f, err := AltitudeToF(int(z), altMeters)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	return spatialid.NewSingleId(z, int32(f), uint32(x), uint32(y))
}

// SingleIdToPoint recovers an approximate WGS-84 point for id's cell: the
// northwest corner of its tile (not the tile center) and the center
// altitude of its F bucket.
func SingleIdToPoint(id spatialid.SingleId) (lat, lon, altMeters float64) {
	lat, lon = XYToLatLon(int(id.Z), uint64(id.X), uint64(id.Y))
	altMeters = FToAltitude(int(id.Z), int64(id.F))
	return lat, lon, altMeters
}
