package f1api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Driver mirrors the driver records returned by the search service.
type Driver struct {
	Number      int    `json:"driver_number" yaml:"driver_number"`
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	TeamName    string `json:"team_name" yaml:"team_name"`
	TeamColour  string `json:"team_colour" yaml:"team_colour"`
	CountryCode string `json:"country_code" yaml:"country_code"`
	HeadshotURL string `json:"headshot_url" yaml:"headshot_url"`
}

// Key identifies a driver. Sample data has no real unique ID, so the number
// is combined with the last name.
func (d Driver) Key() string {
	return fmt.Sprintf("%d-%s", d.Number, d.LastName)
}

// FullName returns "first last" with surrounding space trimmed.
func (d Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// SearchFields returns the fields matched by driver search.
func (d Driver) SearchFields() []string {
	return []string{d.FirstName, d.LastName, d.FullName()}
}

// Circuit mirrors the Ergast circuit table entry.
type Circuit struct {
	ID       string          `json:"circuitId" yaml:"circuit_id"`
	URL      string          `json:"url" yaml:"url"`
	Name     string          `json:"circuitName" yaml:"circuit_name"`
	Location CircuitLocation `json:"Location" yaml:"location"`
}

// CircuitLocation keeps coordinates as text, the way the directory serves them.
type CircuitLocation struct {
	Lat      string `json:"lat" yaml:"lat"`
	Long     string `json:"long" yaml:"long"`
	Locality string `json:"locality" yaml:"locality"`
	Country  string `json:"country" yaml:"country"`
}

// SearchFields returns the fields matched by circuit search.
func (c Circuit) SearchFields() []string {
	return []string{c.Name, c.Location.Locality, c.Location.Country, c.ID}
}

// Coordinates parses the text coordinates. ok is false when either value is
// missing, malformed, not finite or outside the valid latitude and longitude
// range.
func (c Circuit) Coordinates() (lat, long float64, ok bool) {
	lat, okLat := parseDegrees(c.Location.Lat, 90)
	long, okLong := parseDegrees(c.Location.Long, 180)
	if !okLat || !okLong {
		return 0, 0, false
	}
	return lat, long, true
}

func parseDegrees(raw string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

// Place returns "locality, country", dropping whichever part is blank.
func (c Circuit) Place() string {
	parts := make([]string, 0, 2)
	if v := strings.TrimSpace(c.Location.Locality); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(c.Location.Country); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

// Track is a circuit layout with length and lap count.
type Track struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Location string  `json:"location" yaml:"location"`
	Country  string  `json:"country" yaml:"country"`
	LengthKM float64 `json:"circuit_length" yaml:"circuit_length"`
	Laps     int     `json:"laps" yaml:"laps"`
	ImageURL string  `json:"image_url,omitempty" yaml:"image_url"`
}

// SearchFields returns the fields matched by track search.
func (t Track) SearchFields() []string {
	return []string{t.Name, t.Location, t.Country}
}

// RaceDistanceKM is the scheduled race distance.
func (t Track) RaceDistanceKM() float64 {
	return t.LengthKM * float64(t.Laps)
}

// RaceResult is one classified finisher. Time is free text: the winner's
// elapsed time or a gap such as "+22.457".
type RaceResult struct {
	Position   int             `json:"position" yaml:"position"`
	DriverName string          `json:"driver_name" yaml:"driver_name"`
	TeamName   string          `json:"team_name" yaml:"team_name"`
	Time       string          `json:"time" yaml:"time"`
	Points     decimal.Decimal `json:"points" yaml:"points"`
	FastestLap bool            `json:"fastest_lap,omitempty" yaml:"fastest_lap"`
}

// Race is a grand prix with results in the order the service supplied them.
type Race struct {
	ID      int          `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Date    string       `json:"date" yaml:"date"`
	Track   string       `json:"track" yaml:"track"`
	Results []RaceResult `json:"results" yaml:"results"`
}

// SearchFields returns the fields matched by race search.
func (r Race) SearchFields() []string {
	return []string{r.Name, r.Track, r.Date}
}

// Winner returns the first result, if any.
func (r Race) Winner() (RaceResult, bool) {
	if len(r.Results) == 0 {
		return RaceResult{}, false
	}
	return r.Results[0], true
}

// TotalPoints sums the points awarded in the race.
func (r Race) TotalPoints() decimal.Decimal {
	total := decimal.Zero
	for _, res := range r.Results {
		total = total.Add(res.Points)
	}
	return total
}

// DriversEnvelope, TracksEnvelope and RacesEnvelope are the wire shapes served
// by the local backend.
type DriversEnvelope struct {
	Drivers []Driver `json:"drivers"`
}

type TracksEnvelope struct {
	Tracks []Track `json:"tracks"`
}

type RacesEnvelope struct {
	Races []Race `json:"races"`
}
