// Package hazardous answers which household hazardous waste collection
// sites are open on a date
package hazardous

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed schedule.yaml
var defaultSchedule []byte

// Frequency limits a site to some months of the year
type Frequency string

const (
	FrequencyMonthly          Frequency = ""
	FrequencyQuarterly        Frequency = "quarterly"
	FrequencyQuarterlyNoApril Frequency = "quarterly_no_april"
)

// Location is a collection site
type Location struct {
	Name      string    `json:"name" yaml:"name"`
	Address   string    `json:"address" yaml:"address"`
	Lat       float64   `json:"lat" yaml:"lat"`
	Lng       float64   `json:"lng" yaml:"lng"`
	Frequency Frequency `json:"frequency,omitempty" yaml:"frequency"`
}

// Schedule maps a weekday and week of month to its collection sites
type Schedule struct {
	Hours                  string                        `yaml:"hours"`
	QuarterlyMonths        []int                         `yaml:"quarterly_months"`
	QuarterlyNoAprilMonths []int                         `yaml:"quarterly_no_april_months"`
	Days                   map[string]map[int][]Location `yaml:"days"`

	days map[time.Weekday]map[int][]Location
}

// Collections is the answer for a single date
type Collections struct {
	HasCollectionToday bool       `json:"hasCollectionToday"`
	Locations          []Location `json:"locations"`
	DayOfWeek          int        `json:"dayOfWeek"`
	WeekOfMonth        int        `json:"weekOfMonth"`
	Date               string     `json:"date"`
	Hours              string     `json:"hours,omitempty"`
}

// Default returns the built-in schedule
func Default() (*Schedule, error) {
	return Parse(defaultSchedule)
}

// Load reads a schedule from path, or the built-in schedule when path is empty
func Load(path string) (*Schedule, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hazardous schedule: %w", err)
	}
	return Parse(b)
}

// Parse decodes and checks a YAML schedule
func Parse(b []byte) (*Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to parse hazardous schedule: %w", err)
	}

	s.days = make(map[time.Weekday]map[int][]Location, len(s.Days))
	for name, weeks := range s.Days {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in hazardous schedule", name)
		}
		for week, locations := range weeks {
			if week < 1 || week > 4 {
				return nil, fmt.Errorf("week %d for %s is out of range 1-4", week, name)
			}
			for _, loc := range locations {
				switch loc.Frequency {
				case FrequencyMonthly, FrequencyQuarterly, FrequencyQuarterlyNoApril:
				default:
					return nil, fmt.Errorf("unknown frequency %q for %s", loc.Frequency, loc.Name)
				}
			}
		}
		s.days[day] = weeks
	}

	return &s, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return 0, false
}

// WeekOfMonth is the occurrence of the date's weekday within its month
func WeekOfMonth(date time.Time) int {
	return int(math.Ceil(float64(date.Day()) / 7))
}

// For returns the collection sites open on date. Only the calendar date is used.
func (s *Schedule) For(date time.Time) Collections {
	week := min(WeekOfMonth(date), 4)
	result := Collections{
		Locations:   []Location{},
		DayOfWeek:   int(date.Weekday()),
		WeekOfMonth: week,
		Date:        date.Format("2006-01-02"),
	}

	month := int(date.Month())
	for _, loc := range s.days[date.Weekday()][week] {
		if loc.Frequency == FrequencyQuarterly && !slices.Contains(s.QuarterlyMonths, month) {
			continue
		}
		if loc.Frequency == FrequencyQuarterlyNoApril && !slices.Contains(s.QuarterlyNoAprilMonths, month) {
			continue
		}
		result.Locations = append(result.Locations, loc)
	}

	result.HasCollectionToday = len(result.Locations) > 0
	if result.HasCollectionToday {
		result.Hours = s.Hours
	}
	return result
}
