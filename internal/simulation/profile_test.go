package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTargetProfile_SampleCount(t *testing.T) {
	out := BuildTargetProfile(nil, 12, 500)
	assert.Len(t, out, 501)

	// degenerate step counts still produce a usable curve
	out = BuildTargetProfile(nil, 12, 0)
	assert.Len(t, out, 2)
}

func TestBuildTargetProfile_LinearInterpolation(t *testing.T) {
	points := []ProfilePoint{
		{Time: 0, Temperature: 0},
		{Time: 10, Temperature: 100},
	}
	out := BuildTargetProfile(points, 10, 10)
	require.Len(t, out, 11)
	assert.InDelta(t, 0.0, out[0], 1e-12)
	assert.InDelta(t, 50.0, out[5], 1e-12)
	assert.InDelta(t, 100.0, out[10], 1e-12)
}

func TestBuildTargetProfile_FlatExtrapolation(t *testing.T) {
	points := []ProfilePoint{
		{Time: 2, Temperature: 100},
		{Time: 4, Temperature: 200},
	}
	out := BuildTargetProfile(points, 10, 10)
	// before the first waypoint and past the last the edge values hold
	assert.InDelta(t, 100.0, out[0], 1e-12)
	assert.InDelta(t, 100.0, out[1], 1e-12)
	assert.InDelta(t, 200.0, out[5], 1e-12)
	assert.InDelta(t, 200.0, out[10], 1e-12)
}

func TestBuildTargetProfile_SingleWaypointIsFlat(t *testing.T) {
	points := []ProfilePoint{{Time: 5, Temperature: 180}}
	out := BuildTargetProfile(points, 10, 4)
	for _, v := range out {
		assert.InDelta(t, 180.0, v, 1e-12)
	}
}

func TestDefaultProfile_ScalesToDuration(t *testing.T) {
	prof := DefaultProfile(10)
	require.Len(t, prof, 5)
	assert.InDelta(t, 0.0, prof[0].Time, 1e-12)
	assert.InDelta(t, 10.0, prof[len(prof)-1].Time, 1e-12)
	assert.InDelta(t, 20.0, prof[0].Temperature, 1e-12)
	assert.InDelta(t, 227.0, prof[len(prof)-1].Temperature, 1e-12)
}

func TestBuildTargetProfile_EmptySelectsDefault(t *testing.T) {
	out := BuildTargetProfile(nil, 20, 20)
	require.Len(t, out, 21)
	// matches the built-in curve at its own waypoints
	assert.InDelta(t, 20.0, out[0], 1e-12)
	assert.InDelta(t, 149.0, out[5], 1e-12)
	assert.InDelta(t, 204.0, out[10], 1e-12)
	assert.InDelta(t, 227.0, out[20], 1e-12)
}
