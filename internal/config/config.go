package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/schedule"
)

var ErrInvalidConfig = errors.New("config: invalid schedule file")

// Event is a pre-existing occurrence of the schedule.
type Event struct {
	Date string `yaml:"date"`
}

// Schedule is the YAML form of one recurring event.
type Schedule struct {
	StartDate  string   `yaml:"start_date"`
	EndDate    string   `yaml:"end_date"`
	Events     []Event  `yaml:"events"`
	DatesToAdd []string `yaml:"dates_to_add"`
	DatesToDel []string `yaml:"dates_to_del"`

	// Pattern accepts the same names as the pattern picker; unknown names
	// mean the event does not repeat.
	Pattern string `yaml:"pattern"`
	// Weekdays for the weekly pattern, 0 (Sunday) to 6 (Saturday).
	Weekdays []int `yaml:"weekdays"`

	Locale string `yaml:"locale"`
	// WeekStart is "monday" or "sunday". Empty defers to Locale.
	WeekStart    string `yaml:"week_start"`
	StrictBounds bool   `yaml:"strict_bounds"`
}

func Default() *Schedule {
	return &Schedule{
		Events:     []Event{},
		DatesToAdd: []string{},
		DatesToDel: []string{},
		Weekdays:   []int{},
	}
}

// Normalize trims values and fills nil lists.
func (s *Schedule) Normalize() {
	s.StartDate = strings.TrimSpace(s.StartDate)
	s.EndDate = strings.TrimSpace(s.EndDate)
	s.Pattern = strings.ToLower(strings.TrimSpace(s.Pattern))
	s.Locale = strings.TrimSpace(s.Locale)
	switch strings.ToLower(strings.TrimSpace(s.WeekStart)) {
	case "monday", "sunday":
		s.WeekStart = strings.ToLower(strings.TrimSpace(s.WeekStart))
	default:
		s.WeekStart = ""
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.DatesToAdd == nil {
		s.DatesToAdd = []string{}
	}
	if s.DatesToDel == nil {
		s.DatesToDel = []string{}
	}
	if s.Weekdays == nil {
		s.Weekdays = []int{}
	}
}

// Validate checks date syntax and weekday numbers. Range checks are left
// to the schedule controller.
func (s *Schedule) Validate() error {
	for name, raw := range map[string]string{"start_date": s.StartDate, "end_date": s.EndDate} {
		if raw == "" {
			continue
		}
		if _, err := model.ParseDate(raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	lists := map[string][]string{
		"events":       s.eventDates(),
		"dates_to_add": s.DatesToAdd,
		"dates_to_del": s.DatesToDel,
	}
	for name, values := range lists {
		for _, raw := range values {
			if _, err := model.ParseDate(raw); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
			}
		}
	}
	for _, wd := range s.Weekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidConfig, wd)
		}
	}
	return nil
}

func (s *Schedule) eventDates() []string {
	out := make([]string, 0, len(s.Events))
	for _, ev := range s.Events {
		out = append(out, ev.Date)
	}
	return out
}

// Parse decodes, normalizes and validates a YAML document.
func Parse(data []byte) (*Schedule, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the schedule at path. A missing file yields the defaults and
// nothing is written, since schedules are never persisted.
func Load(path string) (*Schedule, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// ToControllerConfig maps the file onto the controller's input. fields
// carry explicit bound values that outrank the file.
func (s *Schedule) ToControllerConfig(fields schedule.Fields) schedule.Config {
	weekdays := make([]time.Weekday, 0, len(s.Weekdays))
	for _, wd := range s.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}
	return schedule.Config{
		Fields:       fields,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Events:       s.eventDates(),
		DatesToAdd:   append([]string(nil), s.DatesToAdd...),
		DatesToDel:   append([]string(nil), s.DatesToDel...),
		Pattern:      s.Pattern,
		Weekdays:     weekdays,
		Locale:       s.Locale,
		WeekStart:    s.WeekStart,
		StrictBounds: s.StrictBounds,
	}
}
