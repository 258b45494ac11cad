package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatLonToXYRejectsOutOfRange(t *testing.T) {
	_, _, err := LatLonToXY(5, 86, 0)
	assert.Error(t, err)
	_, _, err = LatLonToXY(5, 0, 181)
	assert.Error(t, err)
}

func TestLatLonToXYOriginIsCenterTile(t *testing.T) {
	x, y, err := LatLonToXY(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), x)
	assert.Equal(t, uint64(1), y)
}

func TestXYToLatLonRoundTripApproximate(t *testing.T) {
	x, y, err := LatLonToXY(10, 37.7749, -122.4194)
	require.NoError(t, err)
	lat, lon := XYToLatLon(10, x, y)
	// tile corners are coarse at z=10; just check we land in the same hemisphere/region.
	assert.InDelta(t, 37.7749, lat, 1.0)
	assert.InDelta(t, -122.4194, lon, 1.0)
}

func TestAltitudeToFRejectsOutOfRange(t *testing.T) {
	_, err := AltitudeToF(4, MaxAltitudeMeters+1)
	assert.Error(t, err)
}

func TestAltitudeToFRoundTripApproximate(t *testing.T) {
	f, err := AltitudeToF(8, 1000)
	require.NoError(t, err)
	alt := FToAltitude(8, f)
	assert.InDelta(t, 1000, alt, 200)
}

func TestPointToSingleIdAndBack(t *testing.T) {
	id, err := PointToSingleId(12, 48.8566, 2.3522, 300)
	require.NoError(t, err)
	lat, lon, alt := SingleIdToPoint(id)
	assert.InDelta(t, 48.8566, lat, 0.1)
	assert.InDelta(t, 2.3522, lon, 0.1)
	assert.InDelta(t, 300, alt, 500)
}
