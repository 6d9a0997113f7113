package simulation

import (
	"sort"
	"strconv"
	"strings"
)

// Waypoint is one parsed power-schedule entry: reach Temperature (or Time)
// and set Power. The schedule is parsed and exposed on the result, but the
// step loop itself is driven by the PID controller, not by these entries.
type Waypoint struct {
	Temperature float64 `json:"temperature"`
	Time        float64 `json:"time_min"`
	Power       float64 `json:"power"`
}

// ParseSchedule converts raw "<temp>,<mm[:ss]>,<power>" entries into
// waypoints sorted ascending by trigger temperature. Parsing is permissive:
// whitespace is stripped, ';' is accepted as a separator, and entries that
// fail to parse or have neither a positive temperature nor a positive time
// are dropped silently.
func ParseSchedule(entries []string) []Waypoint {
	wps := make([]Waypoint, 0, len(entries))
	for _, e := range entries {
		if wp, ok := parseScheduleEntry(e); ok {
			wps = append(wps, wp)
		}
	}
	sort.SliceStable(wps, func(i, j int) bool {
		return wps[i].Temperature < wps[j].Temperature
	})
	return wps
}

func parseScheduleEntry(entry string) (Waypoint, bool) {
	s := strings.TrimSpace(entry)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ";", ",")

	fields := strings.Split(s, ",")
	if len(fields) < 3 {
		return Waypoint{}, false
	}

	minutes, err := parseClock(fields[1])
	if err != nil {
		return Waypoint{}, false
	}
	temp, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Waypoint{}, false
	}
	power, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Waypoint{}, false
	}

	if temp <= 0 && minutes <= 0 {
		return Waypoint{}, false
	}
	return Waypoint{Temperature: temp, Time: minutes, Power: power}, true
}

// parseClock reads "mm" or "mm:ss" into fractional minutes.
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	minutes, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, err
	}
	if len(parts) > 1 {
		seconds, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, err
		}
		minutes += seconds / 60
	}
	return minutes, nil
}

// InitialPower returns the power of the lowest-temperature waypoint, or the
// fallback when the schedule is empty. This is the only place the sorted
// schedule is consulted.
func InitialPower(wps []Waypoint, fallback float64) float64 {
	if len(wps) == 0 {
		return fallback
	}
	return wps[0].Power
}
