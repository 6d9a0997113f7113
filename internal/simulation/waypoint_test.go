package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule_ValidEntry(t *testing.T) {
	wps := ParseSchedule([]string{"140,4:50,80"})
	require.Len(t, wps, 1)
	assert.Equal(t, 140.0, wps[0].Temperature)
	assert.InDelta(t, 4.0+50.0/60.0, wps[0].Time, 1e-12)
	assert.Equal(t, 80.0, wps[0].Power)
}

func TestParseSchedule_SeparatorsAndWhitespace(t *testing.T) {
	wps := ParseSchedule([]string{" 150 ; 5:00 ; 70 "})
	require.Len(t, wps, 1)
	assert.Equal(t, 150.0, wps[0].Temperature)
	assert.InDelta(t, 5.0, wps[0].Time, 1e-12)
	assert.Equal(t, 70.0, wps[0].Power)
}

func TestParseSchedule_DropsBadEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry string
	}{
		{"non-numeric fields", "abc,x,y"},
		{"too few fields", "140,80"},
		{"zero trigger", "0,0,50"},
		{"bad clock seconds", "140,4:xx,80"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, ParseSchedule([]string{tc.entry}))
		})
	}
}

func TestParseSchedule_SortsByTemperature(t *testing.T) {
	wps := ParseSchedule([]string{
		"180,7:45,40",
		"140,4:50,80",
		"160,6:00,70",
	})
	require.Len(t, wps, 3)
	assert.Equal(t, []float64{140, 160, 180},
		[]float64{wps[0].Temperature, wps[1].Temperature, wps[2].Temperature})
}

func TestParseSchedule_TimeOnlyTriggerKept(t *testing.T) {
	// zero temperature is fine as long as the time is positive
	wps := ParseSchedule([]string{"0,3:30,60"})
	require.Len(t, wps, 1)
	assert.InDelta(t, 3.5, wps[0].Time, 1e-12)
}

func TestInitialPower(t *testing.T) {
	assert.Equal(t, 90.0, InitialPower(nil, 90))
	wps := ParseSchedule([]string{"160,6:00,70", "140,4:50,80"})
	require.Len(t, wps, 2)
	// lowest-temperature waypoint wins
	assert.Equal(t, 80.0, InitialPower(wps, 90))
}
