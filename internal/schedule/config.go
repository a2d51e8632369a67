package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/sandeepkv93/recurcal/internal/model"
)

const defaultSpanYears = 15

// Fields are the explicit start and end inputs bound to the widget. When
// set they take priority over the matching Config values.
type Fields struct {
	Start string
	End   string
}

// Config seeds a controller. Dates use model.DateLayout.
type Config struct {
	Fields     Fields
	StartDate  string
	EndDate    string
	Events     []string
	DatesToAdd []string
	DatesToDel []string
	Pattern    string
	Weekdays   []time.Weekday
	// Locale picks the first day of the week unless WeekStart is set.
	Locale    string
	WeekStart string
	// StrictBounds makes start/end changes compare full dates instead of
	// the same-month day-of-month check.
	StrictBounds bool
}

// DateContext supplies the clock the controller treats as "today".
type DateContext struct {
	Now      func() time.Time
	Location *time.Location
}

func DefaultDateContext() DateContext {
	return DateContext{Now: time.Now, Location: time.Local}
}

func (c DateContext) Today() model.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return model.DateOf(now().In(loc))
}

type Option func(*options)

type options struct {
	logger hclog.Logger
	dates  DateContext
}

func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithDateContext(ctx DateContext) Option {
	return func(o *options) { o.dates = ctx }
}

var sundayFirstLocales = map[string]bool{
	"en-us": true, "en-ca": true, "en-ph": true, "es-mx": true, "pt-br": true,
	"he": true, "ja": true, "ko": true, "zh-tw": true, "zh-hk": true, "hi": true,
}

// WeekStartFor resolves the first weekday of the grid. An explicit
// "monday" or "sunday" wins over the locale; the default is Monday.
func WeekStartFor(locale, weekStart string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(weekStart)) {
	case "monday", "mon":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	case "":
	default:
		return time.Monday, fmt.Errorf("schedule: invalid week start %q", weekStart)
	}
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if sundayFirstLocales[key] {
		return time.Sunday, nil
	}
	if lang, _, ok := strings.Cut(key, "-"); ok && sundayFirstLocales[lang] {
		return time.Sunday, nil
	}
	return time.Monday, nil
}

// resolveBound picks the first non-empty raw value in priority order.
func resolveBound(name string, values ...string) (model.Date, bool, error) {
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			return model.Date{}, false, &ConfigurationError{
				Reason: fmt.Sprintf("invalid %s date %q", name, raw),
				Err:    err,
			}
		}
		return d, true, nil
	}
	return model.Date{}, false, nil
}

func parseDates(name string, raw []string) ([]model.Date, error) {
	out := make([]model.Date, 0, len(raw))
	for _, v := range raw {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("invalid %s entry %q", name, v), Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}
